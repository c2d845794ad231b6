package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"tooldir/internal/events"
)

// rawCollection is implemented by every *Collection[T]
type rawCollection interface {
	Key() string
	raw(ctx context.Context) (json.RawMessage, error)
}

// raw returns the collection as stored JSON with defaults and repairs
// applied. Callers hold the lock.
func (c *Collection[T]) raw(ctx context.Context) (json.RawMessage, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(c.write(items).value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	return data, nil
}

func (r *Repositories) collections() []rawCollection {
	return []rawCollection{
		r.Tools.Collection,
		r.ToolCategories.Collection,
		r.Articles.Collection,
		r.ArticleCategories.Collection,
		r.Resources.Collection,
		r.ResourceCategories.Collection,
		r.Styles.Collection,
		r.Messages.Collection,
		r.Makers.Collection,
		r.AuthCodes.Collection,
		r.Projects.Collection,
		r.Teams.Collection,
	}
}

// Snapshot returns every collection as compact JSON keyed by storage key,
// read the same way List reads it
func (r *Repositories) Snapshot(ctx context.Context) (map[string]json.RawMessage, error) {
	r.base.mu.Lock()
	defer r.base.mu.Unlock()

	out := make(map[string]json.RawMessage, len(CollectionKeys()))
	for _, c := range r.collections() {
		data, err := c.raw(ctx)
		if err != nil {
			return nil, err
		}
		out[c.Key()] = data
	}
	return out, nil
}

// Replace removes the keys in clear, then stores each value verbatim under
// its key. Every key must be a collection key. A replaced event is
// published for each touched collection.
func (r *Repositories) Replace(ctx context.Context, clear []string, values map[string]json.RawMessage) error {
	known := CollectionKeys()
	for _, k := range clear {
		if !slices.Contains(known, k) {
			return fmt.Errorf("unknown collection %q", k)
		}
	}
	for k := range values {
		if !slices.Contains(known, k) {
			return fmt.Errorf("unknown collection %q", k)
		}
	}

	r.base.mu.Lock()
	defer r.base.mu.Unlock()

	for _, k := range clear {
		if err := r.base.store.Remove(ctx, k); err != nil {
			return fmt.Errorf("failed to clear %s: %w", k, err)
		}
	}
	for _, k := range known {
		v, ok := values[k]
		if !ok {
			continue
		}
		if err := r.base.store.Set(ctx, k, string(v)); err != nil {
			return fmt.Errorf("failed to write %s: %w", k, err)
		}
		r.base.metrics.RecordCollectionOp(k, "import")
	}

	for _, k := range known {
		_, set := values[k]
		if set || slices.Contains(clear, k) {
			r.base.notify(k, events.OpReplaced, "")
		}
	}
	return nil
}
