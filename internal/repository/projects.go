package repository

import (
	"context"
	"slices"

	"tooldir/internal/domain"
	"tooldir/internal/events"
)

// ProjectRepository manages maker projects. Membership is kept on both the
// project and the maker.
type ProjectRepository struct {
	*Collection[domain.Project]
	makers *Collection[domain.Maker]
}

// ListByCreator returns the projects created by makerID
func (r *ProjectRepository) ListByCreator(ctx context.Context, makerID string) ([]domain.Project, error) {
	return r.filter(ctx, func(p domain.Project) bool { return p.CreatorID == makerID })
}

// Add publishes a project on behalf of creatorID, who becomes its first
// member. It returns ErrMakerNotFound for unknown creators.
func (r *ProjectRepository) Add(ctx context.Context, creatorID string, in domain.ProjectInput) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	makers, err := r.makers.load(ctx)
	if err != nil {
		return nil, err
	}
	m := indexOf(makers, creatorID)
	if m < 0 {
		return nil, ErrMakerNotFound
	}
	projects, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.ProjectOpen
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	p := domain.Project{
		ID:           r.newID(prefixProject),
		Title:        in.Title,
		Description:  in.Description,
		CreatorID:    creatorID,
		CreatorName:  makers[m].Name,
		CreatedAt:    r.now(),
		Members:      []string{creatorID},
		Status:       status,
		Requirements: in.Requirements,
		Tags:         tags,
	}
	projects = append(projects, p)
	makers[m].Projects = append(makers[m].Projects, p.ID)

	if err := r.saveAll(ctx, r.write(projects), r.makers.write(makers)); err != nil {
		return nil, err
	}
	r.notify(r.key, events.OpCreated, p.ID)
	r.notify(r.makers.key, events.OpUpdated, creatorID)
	return &p, nil
}

// Join adds makerID to a project and the project to the maker. Joining
// twice changes nothing. It reports false if the project does not exist and
// returns ErrMakerNotFound for unknown makers.
func (r *ProjectRepository) Join(ctx context.Context, projectID, makerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	p := indexOf(projects, projectID)
	if p < 0 {
		return false, nil
	}
	makers, err := r.makers.load(ctx)
	if err != nil {
		return false, err
	}
	m := indexOf(makers, makerID)
	if m < 0 {
		return false, ErrMakerNotFound
	}

	var writes []write
	if !projects[p].HasMember(makerID) {
		projects[p].Members = append(projects[p].Members, makerID)
		writes = append(writes, r.write(projects))
	}
	if !makers[m].HasProject(projectID) {
		makers[m].Projects = append(makers[m].Projects, projectID)
		writes = append(writes, r.makers.write(makers))
	}
	if len(writes) == 0 {
		return true, nil
	}
	if err := r.saveAll(ctx, writes...); err != nil {
		return false, err
	}
	r.notify(r.key, events.OpUpdated, projectID)
	r.notify(r.makers.key, events.OpUpdated, makerID)
	return true, nil
}

// Update applies patch to a project. It returns nil if there is no such
// project.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	return r.modify(ctx, id, patch.Apply)
}

// Delete removes a project and drops it from its members' project lists
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(projects, id)
	if i < 0 {
		return false, nil
	}
	projects = slices.Delete(projects, i, i+1)

	writes := []write{r.write(projects)}
	makers, err := r.makers.load(ctx)
	if err != nil {
		return false, err
	}
	if dropRef(makers, id, func(m *domain.Maker) *[]string { return &m.Projects }) {
		writes = append(writes, r.makers.write(makers))
	}
	if err := r.saveAll(ctx, writes...); err != nil {
		return false, err
	}
	r.notify(r.key, events.OpDeleted, id)
	if len(writes) > 1 {
		r.notify(r.makers.key, events.OpReplaced, "")
	}
	return true, nil
}

// dropRef removes id from the list returned by field on every maker. It
// reports whether any maker changed.
func dropRef(makers []domain.Maker, id string, field func(*domain.Maker) *[]string) bool {
	changed := false
	for i := range makers {
		list := field(&makers[i])
		if j := slices.Index(*list, id); j >= 0 {
			*list = slices.Delete(*list, j, j+1)
			changed = true
		}
	}
	return changed
}

// TeamRepository manages teams formed around projects
type TeamRepository struct {
	*Collection[domain.Team]
	makers   *Collection[domain.Maker]
	projects *Collection[domain.Project]
}

// ListByMember returns the teams makerID belongs to
func (r *TeamRepository) ListByMember(ctx context.Context, makerID string) ([]domain.Team, error) {
	return r.filter(ctx, func(t domain.Team) bool { return t.HasMember(makerID) })
}

// Create forms a team and adds it to every member's team list. The leader
// is always a member and duplicate members are dropped. It returns
// ErrProjectNotFound or ErrMakerNotFound when a reference is unknown.
func (r *TeamRepository) Create(ctx context.Context, in domain.TeamInput) (*domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.projects.load(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(projects, in.ProjectID) < 0 {
		return nil, ErrProjectNotFound
	}
	makers, err := r.makers.load(ctx)
	if err != nil {
		return nil, err
	}

	members := []string{in.LeaderID}
	for _, id := range in.Members {
		if !slices.Contains(members, id) {
			members = append(members, id)
		}
	}
	for _, id := range members {
		if indexOf(makers, id) < 0 {
			return nil, ErrMakerNotFound
		}
	}

	teams, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	team := domain.Team{
		ID:        r.newID(prefixTeam),
		Name:      in.Name,
		ProjectID: in.ProjectID,
		Members:   members,
		LeaderID:  in.LeaderID,
		CreatedAt: r.now(),
	}
	teams = append(teams, team)
	for i := range makers {
		if team.HasMember(makers[i].ID) && !makers[i].HasTeam(team.ID) {
			makers[i].Teams = append(makers[i].Teams, team.ID)
		}
	}

	if err := r.saveAll(ctx, r.write(teams), r.makers.write(makers)); err != nil {
		return nil, err
	}
	r.notify(r.key, events.OpCreated, team.ID)
	r.notify(r.makers.key, events.OpReplaced, "")
	return &team, nil
}

// Delete removes a team and drops it from its members' team lists
func (r *TeamRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	teams, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(teams, id)
	if i < 0 {
		return false, nil
	}
	teams = slices.Delete(teams, i, i+1)

	writes := []write{r.write(teams)}
	makers, err := r.makers.load(ctx)
	if err != nil {
		return false, err
	}
	if dropRef(makers, id, func(m *domain.Maker) *[]string { return &m.Teams }) {
		writes = append(writes, r.makers.write(makers))
	}
	if err := r.saveAll(ctx, writes...); err != nil {
		return false, err
	}
	r.notify(r.key, events.OpDeleted, id)
	if len(writes) > 1 {
		r.notify(r.makers.key, events.OpReplaced, "")
	}
	return true, nil
}
