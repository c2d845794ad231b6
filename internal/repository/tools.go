package repository

import (
	"context"
	"strings"

	"tooldir/internal/domain"
	"tooldir/internal/events"
)

// ToolRepository manages the catalogue
type ToolRepository struct {
	*Collection[domain.Tool]
	categories *Collection[domain.Category]
}

// ListByCategory returns the tools in categoryID
func (r *ToolRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Tool, error) {
	return r.filter(ctx, func(t domain.Tool) bool { return t.Category == categoryID })
}

// Search returns tools whose name or description contains query, ignoring
// case. An empty query matches everything.
func (r *ToolRepository) Search(ctx context.Context, query string) ([]domain.Tool, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return r.filter(ctx, func(t domain.Tool) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	})
}

// iconFor returns the icon of categoryID. Callers hold the lock.
func (r *ToolRepository) iconFor(ctx context.Context, categoryID string) (string, error) {
	cats, err := r.categories.load(ctx)
	if err != nil {
		return "", err
	}
	if i := indexOf(cats, categoryID); i >= 0 && cats[i].Icon != "" {
		return cats[i].Icon, nil
	}
	return domain.DefaultToolIcon, nil
}

// Add creates a tool. Color and icon come from its category.
func (r *ToolRepository) Add(ctx context.Context, in domain.ToolInput) (*domain.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tools, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	icon, err := r.iconFor(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	tool := domain.Tool{
		ID:          r.newID(prefixTool),
		Name:        in.Name,
		Description: in.Description,
		Icon:        icon,
		Category:    in.Category,
		Color:       domain.ToolColor(in.Category),
		URL:         in.URL,
	}
	tools = append(tools, tool)
	if err := r.saveAll(ctx, r.write(tools)); err != nil {
		return nil, err
	}
	r.notify(r.key, events.OpCreated, tool.ID)
	return &tool, nil
}

// Update applies patch to the tool with id. Color and icon are derived
// again only when the category changes. It returns nil if there is no such
// tool.
func (r *ToolRepository) Update(ctx context.Context, id string, patch domain.ToolPatch) (*domain.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tools, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(tools, id)
	if i < 0 {
		return nil, nil
	}

	tool := tools[i]
	previous := tool.Category
	patch.Apply(&tool)
	if tool.Category != previous {
		icon, err := r.iconFor(ctx, tool.Category)
		if err != nil {
			return nil, err
		}
		tool.Icon = icon
		tool.Color = domain.ToolColor(tool.Category)
	}
	tools[i] = tool

	if err := r.saveAll(ctx, r.write(tools)); err != nil {
		return nil, err
	}
	r.notify(r.key, events.OpUpdated, id)
	return &tool, nil
}
