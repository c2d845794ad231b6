package repository

import (
	"context"
	"slices"

	"tooldir/internal/domain"
	"tooldir/internal/events"
)

// ResourceRepository manages resources and the links they own
type ResourceRepository struct {
	*Collection[domain.ResourceItem]
}

// ListByCategory returns the resources in categoryID
func (r *ResourceRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.ResourceItem, error) {
	return r.filter(ctx, func(item domain.ResourceItem) bool { return item.CategoryID == categoryID })
}

// Add creates a resource and its links
func (r *ResourceRepository) Add(ctx context.Context, in domain.ResourceInput) (*domain.ResourceItem, error) {
	now := r.now()
	links := make([]domain.CloudLink, 0, len(in.Links))
	for _, l := range in.Links {
		links = append(links, domain.CloudLink{ID: r.newID(prefixLink), Name: l.Name, URL: l.URL})
	}
	return r.insert(ctx, domain.ResourceItem{
		ID:          r.newID(prefixResource),
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Links:       links,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Update applies patch and refreshes UpdatedAt. It returns nil if there is
// no such resource.
func (r *ResourceRepository) Update(ctx context.Context, id string, patch domain.ResourcePatch) (*domain.ResourceItem, error) {
	return r.modify(ctx, id, func(item *domain.ResourceItem) {
		patch.Apply(item)
		item.UpdatedAt = r.now()
	})
}

// editLink runs fn against the parent resource and persists it when fn
// reports a change. changed is false when the resource does not exist.
func (r *ResourceRepository) editLink(ctx context.Context, resourceID string, fn func(*domain.ResourceItem) bool) (changed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, resourceID)
	if i < 0 || !fn(&items[i]) {
		return false, nil
	}
	items[i].UpdatedAt = r.now()
	if err := r.saveAll(ctx, r.write(items)); err != nil {
		return false, err
	}
	r.notify(r.key, events.OpUpdated, resourceID)
	return true, nil
}

// AddLink appends a link to a resource. It returns nil if the resource does
// not exist.
func (r *ResourceRepository) AddLink(ctx context.Context, resourceID string, in domain.CloudLinkInput) (*domain.CloudLink, error) {
	link := domain.CloudLink{ID: r.newID(prefixLink), Name: in.Name, URL: in.URL}
	changed, err := r.editLink(ctx, resourceID, func(item *domain.ResourceItem) bool {
		item.Links = append(item.Links, link)
		return true
	})
	if err != nil || !changed {
		return nil, err
	}
	return &link, nil
}

// UpdateLink applies patch to one link. It returns nil if the resource or
// the link does not exist.
func (r *ResourceRepository) UpdateLink(ctx context.Context, resourceID, linkID string, patch domain.CloudLinkPatch) (*domain.CloudLink, error) {
	var updated domain.CloudLink
	changed, err := r.editLink(ctx, resourceID, func(item *domain.ResourceItem) bool {
		i := item.LinkIndex(linkID)
		if i < 0 {
			return false
		}
		patch.Apply(&item.Links[i])
		updated = item.Links[i]
		return true
	})
	if err != nil || !changed {
		return nil, err
	}
	return &updated, nil
}

// DeleteLink removes one link. It reports false if the resource or the link
// does not exist.
func (r *ResourceRepository) DeleteLink(ctx context.Context, resourceID, linkID string) (bool, error) {
	changed, err := r.editLink(ctx, resourceID, func(item *domain.ResourceItem) bool {
		i := item.LinkIndex(linkID)
		if i < 0 {
			return false
		}
		item.Links = slices.Delete(item.Links, i, i+1)
		return true
	})
	return changed, err
}
