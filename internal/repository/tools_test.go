package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tooldir/internal/domain"
	"tooldir/internal/events"
)

func TestToolAdd(t *testing.T) {
	f := newFixture(t)

	tool, err := f.repos.Tools.Add(f.ctx, domain.ToolInput{
		Name:        "Diff Viewer",
		Description: "Compare two texts",
		URL:         "#diff",
		Category:    "development",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Tool{
		ID:          "tool_t1",
		Name:        "Diff Viewer",
		Description: "Compare two texts",
		Icon:        "fa-code",
		Category:    "development",
		Color:       "bg-green-500",
		URL:         "#diff",
	}, *tool)

	got, err := f.repos.Tools.Get(f.ctx, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	assert.Equal(t, []events.Event{{Collection: KeyTools, Operation: events.OpCreated, ID: "tool_t1"}}, f.drain())
}

func TestToolAddCustomCategory(t *testing.T) {
	f := newFixture(t)

	cat, err := f.repos.ToolCategories.Add(f.ctx, domain.CategoryInput{Name: "AI", Icon: "fa-robot"})
	require.NoError(t, err)

	tool, err := f.repos.Tools.Add(f.ctx, domain.ToolInput{Name: "Chat", URL: "#chat", Category: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "fa-robot", tool.Icon)
	assert.Equal(t, domain.DefaultToolColor, tool.Color)

	orphan, err := f.repos.Tools.Add(f.ctx, domain.ToolInput{Name: "Orphan", URL: "#o", Category: "gone"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultToolIcon, orphan.Icon)
}

func TestToolUpdate(t *testing.T) {
	f := newFixture(t)

	name := "Timer Pro"
	same := "productivity"
	tool, err := f.repos.Tools.Update(f.ctx, "1", domain.ToolPatch{Name: &name, Category: &same})
	require.NoError(t, err)
	assert.Equal(t, "Timer Pro", tool.Name)
	assert.Equal(t, "fa-clock", tool.Icon, "icon kept when category is unchanged")
	assert.Equal(t, "bg-blue-500", tool.Color)

	design := "design"
	tool, err = f.repos.Tools.Update(f.ctx, "1", domain.ToolPatch{Category: &design})
	require.NoError(t, err)
	assert.Equal(t, "fa-paint-brush", tool.Icon)
	assert.Equal(t, "bg-purple-500", tool.Color)
	assert.Equal(t, "Timer Pro", tool.Name)
}

func TestToolQueries(t *testing.T) {
	f := newFixture(t)

	design, err := f.repos.Tools.ListByCategory(f.ctx, "design")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "6", "12"}, ids(design))

	tests := []struct {
		query string
		want  []string
	}{
		{"json", []string{"7"}},
		{"  REGEX ", []string{"11"}},
		{"passwords", []string{"8"}},
		{"nothing matches this", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := f.repos.Tools.Search(f.ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	all, err := f.repos.Tools.Search(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(domain.SeedTools()))
}
