package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"tooldir/internal/repository"
	"tooldir/internal/service"
	"tooldir/internal/storage/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run starts w and returns a stop function that waits for Watch to return
func run(t *testing.T, w *Watcher) func() error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	return func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
			return nil
		}
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// waitForChange rewrites path until the watcher reports a change. The first
// writes may land before the watch is registered.
func waitForChange(t *testing.T, path string, changes <-chan string) {
	t.Helper()
	require.Eventually(t, func() bool {
		write(t, path, "{}")
		select {
		case <-changes:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	// Drain changes queued by the retries
	for {
		select {
		case <-changes:
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	changes := make(chan string, 16)

	w := New(path, func(_ context.Context, p string) error {
		changes <- p
		return nil
	}, nil).WithDebounce(50 * time.Millisecond)
	stop := run(t, w)

	waitForChange(t, path, changes)

	for i := 0; i < 5; i++ {
		write(t, path, "{}")
	}
	select {
	case p := <-changes:
		assert.Equal(t, path, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-changes:
		t.Fatal("burst of writes reported more than once")
	case <-time.After(200 * time.Millisecond):
	}

	assert.ErrorIs(t, stop(), context.Canceled)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	changes := make(chan string, 16)

	w := New(path, func(_ context.Context, p string) error {
		changes <- p
		return nil
	}, nil).WithDebounce(10 * time.Millisecond)
	stop := run(t, w)
	defer stop()

	waitForChange(t, path, changes)

	write(t, filepath.Join(dir, "other.json"), "{}")
	select {
	case p := <-changes:
		t.Fatalf("unexpected change for %s", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchSurvivesHandlerErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	changes := make(chan string, 16)

	w := New(path, func(_ context.Context, p string) error {
		changes <- p
		return errors.New("bad document")
	}, nil).WithDebounce(10 * time.Millisecond)
	stop := run(t, w)
	defer stop()

	waitForChange(t, path, changes)
	write(t, path, "{}")
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher stopped after a handler error")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "import.json"), func(context.Context, string) error { return nil }, nil)
	err := w.Watch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestWithDebounce(t *testing.T) {
	w := New("x.json", nil, nil)
	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.Equal(t, DefaultDebounce, w.WithDebounce(0).debounce)
	assert.Equal(t, time.Second, w.WithDebounce(time.Second).debounce)
}

func TestWatchImportsDocument(t *testing.T) {
	repos := repository.New(memory.New(), repository.WithBcryptCost(bcrypt.MinCost))
	db := service.NewDatabaseService(repos, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	imported := make(chan string, 16)

	w := New(path, func(ctx context.Context, p string) error {
		_, err := db.ImportFile(ctx, p)
		imported <- p
		return err
	}, nil).WithDebounce(10 * time.Millisecond)
	stop := run(t, w)
	defer stop()

	waitForChange(t, path, imported)

	write(t, path, `{"messages": [{"id": "msg_1", "author": "a", "content": "hi", "replies": []}]}`)
	require.Eventually(t, func() bool {
		msgs, err := repos.Messages.List(context.Background())
		return err == nil && len(msgs) == 1 && msgs[0].ID == "msg_1"
	}, 2*time.Second, 20*time.Millisecond)
}
