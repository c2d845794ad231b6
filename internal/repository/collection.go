package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"tooldir/internal/domain"
	"tooldir/internal/events"
	"tooldir/internal/metrics"
	"tooldir/internal/storage"
)

// base holds what every collection shares
type base struct {
	store   storage.Store
	mu      *sync.Mutex
	bus     *events.Bus
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func(prefix string) string
}

// write is one pending collection overwrite
type write struct {
	key   string
	value any
}

type snapshot struct {
	key   string
	raw   string
	found bool
}

// saveAll overwrites each key in order. If a write fails, keys already
// written are restored to their previous values. Callers hold the lock.
func (b *base) saveAll(ctx context.Context, writes ...write) error {
	done := make([]snapshot, 0, len(writes))
	for _, w := range writes {
		data, err := json.Marshal(w.value)
		if err != nil {
			b.rollback(ctx, done)
			return fmt.Errorf("failed to encode %s: %w", w.key, err)
		}
		prev := snapshot{key: w.key}
		if len(writes) > 1 {
			prev.raw, prev.found, err = b.store.Get(ctx, w.key)
			if err != nil {
				b.rollback(ctx, done)
				return fmt.Errorf("failed to read %s: %w", w.key, err)
			}
		}
		if err := b.store.Set(ctx, w.key, string(data)); err != nil {
			b.rollback(ctx, done)
			return fmt.Errorf("failed to write %s: %w", w.key, err)
		}
		b.metrics.RecordCollectionOp(w.key, "save")
		done = append(done, prev)
	}
	return nil
}

func (b *base) rollback(ctx context.Context, done []snapshot) {
	for i := len(done) - 1; i >= 0; i-- {
		s := done[i]
		var err error
		if s.found {
			err = b.store.Set(ctx, s.key, s.raw)
		} else {
			err = b.store.Remove(ctx, s.key)
		}
		if err != nil {
			b.log.Error("rollback failed", zap.String("key", s.key), zap.Error(err))
		}
	}
}

func (b *base) notify(collection string, op events.Operation, id string) {
	b.bus.Publish(events.Event{Collection: collection, Operation: op, ID: id})
}

// Collection is one JSON array of T stored under one key
type Collection[T domain.Entity] struct {
	*base
	key      string
	defaults func() []T
	pinned   []string
}

func newCollection[T domain.Entity](b *base, key string, defaults func() []T) *Collection[T] {
	return &Collection[T]{base: b, key: key, defaults: defaults}
}

// Key returns the storage key of the collection
func (c *Collection[T]) Key() string { return c.key }

// load reads the collection. Callers hold the lock.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	c.metrics.RecordCollectionOp(c.key, "load")
	if !found {
		return c.defaults(), nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		c.log.Warn("stored collection unreadable, using seed data",
			zap.String("key", c.key), zap.Error(err))
		c.metrics.RecordParseFailure(c.key)
		return c.defaults(), nil
	}

	if len(c.pinned) > 0 {
		return c.repair(ctx, items)
	}
	return items, nil
}

// repair appends pinned seed records missing from items and persists the
// result if anything was added
func (c *Collection[T]) repair(ctx context.Context, items []T) ([]T, error) {
	var seeds []T
	restored := 0
	for _, id := range c.pinned {
		if indexOf(items, id) >= 0 {
			continue
		}
		if seeds == nil {
			seeds = c.defaults()
		}
		if i := indexOf(seeds, id); i >= 0 {
			items = append(items, seeds[i])
			restored++
		}
	}
	if restored == 0 {
		return items, nil
	}
	if err := c.saveAll(ctx, c.write(items)); err != nil {
		return nil, err
	}
	c.log.Info("restored pinned records", zap.String("key", c.key), zap.Int("count", restored))
	c.notify(c.key, events.OpUpdated, "")
	return items, nil
}

// write prepares items for saveAll
func (c *Collection[T]) write(items []T) write {
	if items == nil {
		items = []T{}
	}
	return write{key: c.key, value: items}
}

func indexOf[T domain.Entity](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return item.EntityID() == id })
}

// List returns every record
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Get returns the record with id, or nil if there is none
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(items, id); i >= 0 {
		return &items[i], nil
	}
	return nil, nil
}

// Delete removes the record with id. It reports false if there was none.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return false, nil
	}
	items = slices.Delete(items, i, i+1)
	if err := c.saveAll(ctx, c.write(items)); err != nil {
		return false, err
	}
	c.notify(c.key, events.OpDeleted, id)
	return true, nil
}

// filter returns the records for which keep is true
func (c *Collection[T]) filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// insert appends item and persists
func (c *Collection[T]) insert(ctx context.Context, item T) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := c.saveAll(ctx, c.write(items)); err != nil {
		return nil, err
	}
	c.notify(c.key, events.OpCreated, item.EntityID())
	return &item, nil
}

// modify applies fn to the record with id and persists. It returns nil if
// there is no such record.
func (c *Collection[T]) modify(ctx context.Context, id string, fn func(*T)) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, nil
	}
	fn(&items[i])
	if err := c.saveAll(ctx, c.write(items)); err != nil {
		return nil, err
	}
	c.notify(c.key, events.OpUpdated, id)
	updated := items[i]
	return &updated, nil
}
