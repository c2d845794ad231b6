package repository

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tooldir/internal/domain"
	"tooldir/internal/events"
	"tooldir/internal/metrics"
)

func TestLoadDefaults(t *testing.T) {
	f := newFixture(t)

	tools, err := f.repos.Tools.List(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedTools(), tools)

	msgs, err := f.repos.Messages.List(f.ctx)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	_, found := f.raw(t, KeyTools)
	assert.False(t, found, "reading defaults must not write them")
}

func TestLoadUnreadableFallsBackToSeed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"malformed", "{not json"},
		{"null", "null"},
		{"object", `{"id":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New()
			f := newFixture(t, WithMetrics(m))
			f.put(t, KeyToolCategories, tt.value)

			cats, err := f.repos.ToolCategories.List(f.ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.SeedToolCategories(), cats)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.CollectionParseFails.WithLabelValues(KeyToolCategories)))

			raw, _ := f.raw(t, KeyToolCategories)
			assert.Equal(t, tt.value, raw)
		})
	}
}

func TestLoadEmptyArrayIsKept(t *testing.T) {
	f := newFixture(t)
	f.put(t, KeyTools, "[]")

	tools, err := f.repos.Tools.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, tools)
}

func TestLoadStoreErrorIsReturned(t *testing.T) {
	f := newFixture(t)
	f.store.setFail(KeyTools, true, false)

	_, err := f.repos.Tools.List(f.ctx)
	assert.ErrorIs(t, err, errBoom)

	_, err = f.repos.Tools.Get(f.ctx, "1")
	assert.ErrorIs(t, err, errBoom)
}

func TestSaveStoreErrorIsReturned(t *testing.T) {
	f := newFixture(t)
	f.store.setFail(KeyMessages, false, true)

	_, err := f.repos.Messages.Add(f.ctx, domain.MessageInput{Author: "A", Content: "hi"})
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.drain(), "failed writes publish nothing")
}

func TestPinnedArticleRepair(t *testing.T) {
	t.Run("restores missing pinned articles", func(t *testing.T) {
		f := newFixture(t)
		f.put(t, KeyArticles, `[{"id":"1","title":"Kept","content":"c","categoryId":"news","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]`)

		articles, err := f.repos.Articles.List(f.ctx)
		require.NoError(t, err)
		require.Len(t, articles, 3)
		assert.Equal(t, "Kept", articles[0].Title)
		assert.Equal(t, domain.ArticleUpdateLogID, articles[1].ID)
		assert.Equal(t, domain.ArticleAnnouncementID, articles[2].ID)

		raw, _ := f.raw(t, KeyArticles)
		var stored []domain.Article
		require.NoError(t, json.Unmarshal([]byte(raw), &stored))
		assert.Len(t, stored, 3, "repair is persisted")
	})

	t.Run("no write when nothing is missing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.repos.Articles.List(f.ctx)
		require.NoError(t, err)
		_, found := f.raw(t, KeyArticles)
		assert.False(t, found)
	})

	t.Run("deleted pinned article comes back", func(t *testing.T) {
		f := newFixture(t)
		ok, err := f.repos.Articles.Delete(f.ctx, domain.ArticleUpdateLogID)
		require.NoError(t, err)
		assert.True(t, ok)

		a, err := f.repos.Articles.Get(f.ctx, domain.ArticleUpdateLogID)
		require.NoError(t, err)
		assert.NotNil(t, a)
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, WithPinnedArticles())
		f.put(t, KeyArticles, "[]")

		articles, err := f.repos.Articles.List(f.ctx)
		require.NoError(t, err)
		assert.Empty(t, articles)
	})

	t.Run("custom ids", func(t *testing.T) {
		f := newFixture(t, WithPinnedArticles("1"))
		f.put(t, KeyArticles, "[]")

		articles, err := f.repos.Articles.List(f.ctx)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "1", articles[0].ID)
	})
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)

	tool, err := f.repos.Tools.Get(f.ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, tool)

	ok, err := f.repos.Tools.Delete(f.ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	updated, err := f.repos.Tools.Update(f.ctx, "missing", domain.ToolPatch{})
	require.NoError(t, err)
	assert.Nil(t, updated)

	_, found := f.raw(t, KeyTools)
	assert.False(t, found, "not-found paths must not write")
}

func TestDeletePublishesEvent(t *testing.T) {
	f := newFixture(t)

	ok, err := f.repos.Tools.Delete(f.ctx, "3")
	require.NoError(t, err)
	require.True(t, ok)

	tools, err := f.repos.Tools.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, tools, len(domain.SeedTools())-1)

	assert.Equal(t, []events.Event{{Collection: KeyTools, Operation: events.OpDeleted, ID: "3"}}, f.drain())
}

func TestConcurrentWritesAreSerialised(t *testing.T) {
	f := newFixture(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.repos.Messages.Add(f.ctx, domain.MessageInput{Author: "A", Content: "hi"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	msgs, err := f.repos.Messages.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, n)
}

func TestSaveAllRollsBack(t *testing.T) {
	f := newFixture(t)
	f.put(t, KeyTools, `[]`)
	f.store.setFail(KeyMessages, false, true)

	err := f.repos.base.saveAll(f.ctx,
		write{key: KeyTools, value: []domain.Tool{{ID: "x"}}},
		write{key: KeyArticles, value: []domain.Article{}},
		write{key: KeyMessages, value: []domain.Message{}},
	)
	assert.ErrorIs(t, err, errBoom)

	raw, found := f.raw(t, KeyTools)
	assert.True(t, found)
	assert.Equal(t, "[]", raw)
	_, found = f.raw(t, KeyArticles)
	assert.False(t, found, "keys that did not exist are removed again")
}

func TestNewIDFormat(t *testing.T) {
	id := NewID("tool")
	assert.Regexp(t, `^tool_[0-9a-f-]{36}$`, id)
	assert.NotEqual(t, id, NewID("tool"))
}
