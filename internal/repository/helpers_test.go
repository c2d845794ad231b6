package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tooldir/internal/events"
	"tooldir/internal/storage/memory"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// sequentialIDs never collides with seed ids such as "maker_1"
func sequentialIDs() func(string) string {
	var mu sync.Mutex
	n := 0
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s_t%d", prefix, n)
	}
}

// failingStore fails Get or Set for selected keys
type failingStore struct {
	*memory.Store
	mu      sync.Mutex
	failSet map[string]bool
	failGet map[string]bool
}

func newFailingStore() *failingStore {
	return &failingStore{Store: memory.New(), failSet: map[string]bool{}, failGet: map[string]bool{}}
}

func (s *failingStore) setFail(key string, get, set bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet[key] = get
	s.failSet[key] = set
}

func (s *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	fail := s.failGet[key]
	s.mu.Unlock()
	if fail {
		return "", false, errBoom
	}
	return s.Store.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	fail := s.failSet[key]
	s.mu.Unlock()
	if fail {
		return errBoom
	}
	return s.Store.Set(ctx, key, value)
}

type fixture struct {
	ctx    context.Context
	store  *failingStore
	clock  *fakeClock
	bus    *events.Bus
	events chan events.Event
	repos  *Repositories
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		ctx:    context.Background(),
		store:  newFailingStore(),
		clock:  &fakeClock{t: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)},
		bus:    events.NewBus(),
		events: make(chan events.Event, 256),
	}
	unsubscribe := f.bus.Subscribe(f.events)
	t.Cleanup(unsubscribe)

	base := []Option{
		WithClock(f.clock.now),
		WithIDGenerator(sequentialIDs()),
		WithBus(f.bus),
		WithBcryptCost(bcrypt.MinCost),
	}
	f.repos = New(f.store, append(base, opts...)...)
	return f
}

// drain returns the events published so far
func (f *fixture) drain() []events.Event {
	var out []events.Event
	for {
		select {
		case ev := <-f.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func (f *fixture) raw(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, found, err := f.store.Store.Get(f.ctx, key)
	require.NoError(t, err)
	return v, found
}

func (f *fixture) put(t *testing.T, key, value string) {
	t.Helper()
	require.NoError(t, f.store.Store.Set(f.ctx, key, value))
}
