package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tooldir/internal/domain"
)

func registerMaker(t *testing.T, f *fixture, username, code string) *domain.Maker {
	t.Helper()
	m, err := f.repos.Makers.Register(f.ctx, newMaker(username), code)
	require.NoError(t, err)
	return m
}

func TestProjectAdd(t *testing.T) {
	f := newFixture(t)

	p, err := f.repos.Projects.Add(f.ctx, "maker_1", domain.ProjectInput{Title: "Robot", Description: "Build a robot"})
	require.NoError(t, err)
	assert.Equal(t, []string{"maker_1"}, p.Members)
	assert.Equal(t, domain.ProjectOpen, p.Status)
	assert.Equal(t, "Innovator Team", p.CreatorName)
	assert.NotNil(t, p.Tags)

	got, err := f.repos.Projects.Get(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	m, err := f.repos.Makers.Get(f.ctx, "maker_1")
	require.NoError(t, err)
	assert.Contains(t, m.Projects, p.ID)

	mine, err := f.repos.Projects.ListByCreator(f.ctx, "maker_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"project_1", p.ID}, ids(mine))

	_, err = f.repos.Projects.Add(f.ctx, "ghost", domain.ProjectInput{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrMakerNotFound)
}

func TestProjectJoinIsIdempotent(t *testing.T) {
	f := newFixture(t)
	m := registerMaker(t, f, "joiner", "MAKER2025002")

	for i := 0; i < 2; i++ {
		ok, err := f.repos.Projects.Join(f.ctx, "project_1", m.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	p, err := f.repos.Projects.Get(f.ctx, "project_1")
	require.NoError(t, err)
	count := 0
	for _, id := range p.Members {
		if id == m.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)

	maker, err := f.repos.Makers.Get(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"project_1"}, maker.Projects)

	ok, err := f.repos.Projects.Join(f.ctx, "missing", m.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.repos.Projects.Join(f.ctx, "project_1", "ghost")
	assert.ErrorIs(t, err, ErrMakerNotFound)
}

func TestProjectUpdateAndDelete(t *testing.T) {
	f := newFixture(t)

	status := domain.ProjectInProgress
	p, err := f.repos.Projects.Update(f.ctx, "project_1", domain.ProjectPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectInProgress, p.Status)
	assert.Equal(t, "AI assistant", p.Title)

	ok, err := f.repos.Projects.Delete(f.ctx, "project_1")
	require.NoError(t, err)
	assert.True(t, ok)

	m, err := f.repos.Makers.Get(f.ctx, "maker_1")
	require.NoError(t, err)
	assert.NotContains(t, m.Projects, "project_1")

	ok, err = f.repos.Projects.Delete(f.ctx, "project_1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTeamCreate(t *testing.T) {
	f := newFixture(t)
	other := registerMaker(t, f, "teammate", "MAKER2025002")

	team, err := f.repos.Teams.Create(f.ctx, domain.TeamInput{
		Name:      "Core",
		ProjectID: "project_1",
		Members:   []string{other.ID, "maker_1", other.ID},
		LeaderID:  "maker_1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"maker_1", other.ID}, team.Members)

	for _, id := range []string{"maker_1", other.ID} {
		m, err := f.repos.Makers.Get(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{team.ID}, m.Teams)

		teams, err := f.repos.Teams.ListByMember(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{team.ID}, ids(teams))
	}

	t.Run("unknown project", func(t *testing.T) {
		_, err := f.repos.Teams.Create(f.ctx, domain.TeamInput{Name: "x", ProjectID: "nope", LeaderID: "maker_1"})
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := f.repos.Teams.Create(f.ctx, domain.TeamInput{Name: "x", ProjectID: "project_1", LeaderID: "maker_1", Members: []string{"ghost"}})
		assert.ErrorIs(t, err, ErrMakerNotFound)
	})

	t.Run("delete drops membership", func(t *testing.T) {
		ok, err := f.repos.Teams.Delete(f.ctx, team.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		m, err := f.repos.Makers.Get(f.ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, m.Teams)
	})
}
