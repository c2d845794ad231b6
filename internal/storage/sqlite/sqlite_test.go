package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates an in-memory SQLite store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New("", 0)
	assert.Error(t, err)
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	v, found, err := s.Get(context.Background(), "tools")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Set(ctx, "tools", `[{"id":"1"}]`))
	require.NoError(t, s.Set(ctx, "tools", `[]`))

	v, found, err := s.Get(ctx, "tools")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)
}

func TestRemoveAndKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, k := range []string{"messages", "appStyles", "tools"} {
		require.NoError(t, s.Set(ctx, k, "[]"))
	}

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"appStyles", "messages", "tools"}, keys)

	require.NoError(t, s.Remove(ctx, "messages"))
	require.NoError(t, s.Remove(ctx, "never-written"))

	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"appStyles", "tools"}, keys)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tooldir.db")

	s, err := New(path, 0)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "currentStyleId", "modern"))
	require.NoError(t, s.Close())

	s, err = New(path, 0)
	require.NoError(t, err)
	defer s.Close()

	v, found, err := s.Get(ctx, "currentStyleId")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "modern", v)
}

func TestLargeValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	big := "[" + strings.Repeat(`"x",`, 50000) + `"x"]`
	require.NoError(t, s.Set(ctx, "articles", big))

	v, _, err := s.Get(ctx, "articles")
	require.NoError(t, err)
	assert.Equal(t, big, v)
}

func TestDriverErrorsAreWrapped(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := newWithDB(sqlx.NewDb(mockDB, "sqlite"))
	require.NoError(t, err)

	diskErr := errors.New("disk I/O error")
	mock.ExpectExec("INSERT INTO kv").WithArgs("tools", "[]").WillReturnError(diskErr)
	err = s.Set(context.Background(), "tools", "[]")
	require.Error(t, err)
	assert.ErrorIs(t, err, diskErr)
	assert.Contains(t, err.Error(), "tools")

	mock.ExpectQuery("SELECT value FROM kv").WithArgs("tools").WillReturnError(diskErr)
	_, found, err := s.Get(context.Background(), "tools")
	assert.ErrorIs(t, err, diskErr)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnError(errors.New("read-only database"))
	_, err = newWithDB(sqlx.NewDb(mockDB, "sqlite"))
	assert.ErrorContains(t, err, "migrate")
}
