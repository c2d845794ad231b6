package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"tooldir/internal/domain"
	"tooldir/internal/events"
)

// StyleRepository manages presentation styles and the current style pointer
type StyleRepository struct {
	*Collection[domain.AppStyle]
}

func clearDefaults(styles []domain.AppStyle) {
	for i := range styles {
		styles[i].IsDefault = false
	}
}

// Add creates a style. A default style takes the flag from every other.
func (r *StyleRepository) Add(ctx context.Context, in domain.StyleInput) (*domain.AppStyle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	styles, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	vars := maps.Clone(in.Variables)
	if vars == nil {
		vars = map[string]string{}
	}
	style := domain.AppStyle{
		ID:          r.newID(prefixStyle),
		Name:        in.Name,
		Description: in.Description,
		IsDefault:   in.IsDefault,
		Variables:   vars,
	}
	if style.IsDefault {
		clearDefaults(styles)
	}
	styles = append(styles, style)
	if err := r.saveAll(ctx, r.write(styles)); err != nil {
		return nil, err
	}
	r.notify(r.key, events.OpCreated, style.ID)
	return &style, nil
}

// Update applies patch to a style. Setting IsDefault takes the flag from
// every other style. It returns nil if there is no such style.
func (r *StyleRepository) Update(ctx context.Context, id string, patch domain.StylePatch) (*domain.AppStyle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	styles, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(styles, id)
	if i < 0 {
		return nil, nil
	}
	if patch.IsDefault != nil && *patch.IsDefault {
		clearDefaults(styles)
	}
	patch.Apply(&styles[i])
	if err := r.saveAll(ctx, r.write(styles)); err != nil {
		return nil, err
	}
	r.notify(r.key, events.OpUpdated, id)
	updated := styles[i]
	return &updated, nil
}

// Delete removes a style. It refuses to remove the last one and clears the
// current pointer if it named the removed style.
func (r *StyleRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	styles, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(styles, id)
	if i < 0 || len(styles) <= 1 {
		return false, nil
	}
	styles = slices.Delete(styles, i, i+1)
	if err := r.saveAll(ctx, r.write(styles)); err != nil {
		return false, err
	}

	current, found, err := r.store.Get(ctx, KeyCurrentStyle)
	if err != nil {
		return true, fmt.Errorf("failed to read %s: %w", KeyCurrentStyle, err)
	}
	if found && current == id {
		if err := r.store.Remove(ctx, KeyCurrentStyle); err != nil {
			return true, fmt.Errorf("failed to clear %s: %w", KeyCurrentStyle, err)
		}
		r.notify(r.key, events.OpSelected, "")
	}
	r.notify(r.key, events.OpDeleted, id)
	return true, nil
}

// Current returns the selected style. Without a valid selection it falls
// back to the first default style, then to the first style. It returns nil
// only when there are no styles.
func (r *StyleRepository) Current(ctx context.Context) (*domain.AppStyle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	styles, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(styles) == 0 {
		return nil, nil
	}
	current, found, err := r.store.Get(ctx, KeyCurrentStyle)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeyCurrentStyle, err)
	}
	if found {
		if i := indexOf(styles, current); i >= 0 {
			return &styles[i], nil
		}
	}
	if i := slices.IndexFunc(styles, func(s domain.AppStyle) bool { return s.IsDefault }); i >= 0 {
		return &styles[i], nil
	}
	return &styles[0], nil
}

// SetCurrent selects a style. Only the pointer changes. It reports false
// if there is no such style.
func (r *StyleRepository) SetCurrent(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	styles, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(styles, id) < 0 {
		return false, nil
	}
	if err := r.store.Set(ctx, KeyCurrentStyle, id); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", KeyCurrentStyle, err)
	}
	r.notify(r.key, events.OpSelected, id)
	return true, nil
}
