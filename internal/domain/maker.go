package domain

import (
	"slices"
	"time"
)

// Roles carried by sessions
const (
	RoleAdmin = "admin"
	RoleMaker = "maker"
)

// Maker is a member of the maker programme. PasswordHash is a bcrypt hash
// and never leaves the process through Public.
type Maker struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Contact      string    `json:"contact"`
	ProjectInfo  string    `json:"projectInfo"`
	IsAuthorized bool      `json:"isAuthorized"`
	AuthCode     string    `json:"authCode,omitempty"`
	Points       int       `json:"points"`
	JoinDate     time.Time `json:"joinDate"`
	Projects     []string  `json:"projects"`
	Teams        []string  `json:"teams"`
}

// EntityID returns the maker id
func (m Maker) EntityID() string { return m.ID }

// Public returns a copy of m without the password hash
func (m Maker) Public() Maker {
	m.PasswordHash = ""
	m.Projects = append([]string(nil), m.Projects...)
	m.Teams = append([]string(nil), m.Teams...)
	return m
}

// HasProject reports whether projectID is in m.Projects
func (m Maker) HasProject(projectID string) bool { return slices.Contains(m.Projects, projectID) }

// HasTeam reports whether teamID is in m.Teams
func (m Maker) HasTeam(teamID string) bool { return slices.Contains(m.Teams, teamID) }

// MakerInput is an application for maker membership
type MakerInput struct {
	Username    string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Name        string `json:"name" validate:"required,max=64"`
	Company     string `json:"company" validate:"max=128"`
	Contact     string `json:"contact" validate:"required,max=128"`
	ProjectInfo string `json:"projectInfo" validate:"max=1000"`
}

// MakerPatch holds the profile fields a maker may change
type MakerPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Company     *string `json:"company,omitempty" validate:"omitempty,max=128"`
	Contact     *string `json:"contact,omitempty" validate:"omitempty,min=1,max=128"`
	ProjectInfo *string `json:"projectInfo,omitempty" validate:"omitempty,max=1000"`
}

// Apply copies the set fields onto m
func (p MakerPatch) Apply(m *Maker) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Company != nil {
		m.Company = *p.Company
	}
	if p.Contact != nil {
		m.Contact = *p.Contact
	}
	if p.ProjectInfo != nil {
		m.ProjectInfo = *p.ProjectInfo
	}
}

// AuthCode is a single-use invitation. Once IsUsed is set it stays set.
type AuthCode struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	IsUsed        bool       `json:"isUsed"`
	InitialPoints int        `json:"initialPoints"`
	CreatedAt     time.Time  `json:"createdAt"`
	UsedBy        string     `json:"usedBy,omitempty"`
	UsedAt        *time.Time `json:"usedAt,omitempty"`
}

// EntityID returns the auth code id
func (a AuthCode) EntityID() string { return a.ID }

// DefaultInitialPoints is credited by a generated code when no value is given
const DefaultInitialPoints = 100

// ProjectStatus is the state of a Project
type ProjectStatus string

// ProjectStatus values
const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// Project is a maker-published project looking for members
type Project struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	CreatorID    string        `json:"creatorId"`
	CreatorName  string        `json:"creatorName"`
	CreatedAt    time.Time     `json:"createdAt"`
	Members      []string      `json:"members"`
	Status       ProjectStatus `json:"status"`
	Requirements string        `json:"requirements"`
	Tags         []string      `json:"tags"`
}

// EntityID returns the project id
func (p Project) EntityID() string { return p.ID }

// HasMember reports whether makerID is a member of p
func (p Project) HasMember(makerID string) bool { return slices.Contains(p.Members, makerID) }

// ProjectInput holds the fields of a new project. The creator comes from
// the session, not the body.
type ProjectInput struct {
	Title        string        `json:"title" validate:"required,max=128"`
	Description  string        `json:"description" validate:"required,max=2000"`
	Status       ProjectStatus `json:"status" validate:"omitempty,oneof=open in_progress completed"`
	Requirements string        `json:"requirements" validate:"max=1000"`
	Tags         []string      `json:"tags" validate:"max=16,dive,min=1,max=32"`
}

// ProjectPatch holds the project fields that may change
type ProjectPatch struct {
	Title        *string        `json:"title,omitempty" validate:"omitempty,min=1,max=128"`
	Description  *string        `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	Status       *ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=open in_progress completed"`
	Requirements *string        `json:"requirements,omitempty" validate:"omitempty,max=1000"`
	Tags         *[]string      `json:"tags,omitempty" validate:"omitempty,max=16,dive,min=1,max=32"`
}

// Apply copies the set fields onto p
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.Requirements != nil {
		p.Requirements = *pp.Requirements
	}
	if pp.Tags != nil {
		p.Tags = append([]string(nil), (*pp.Tags)...)
	}
}

// Team is a roster of makers working on one project
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ProjectID string    `json:"projectId"`
	Members   []string  `json:"members"`
	LeaderID  string    `json:"leaderId"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntityID returns the team id
func (t Team) EntityID() string { return t.ID }

// HasMember reports whether makerID is on the team
func (t Team) HasMember(makerID string) bool { return slices.Contains(t.Members, makerID) }

// TeamInput holds the fields of a new team. The leader is always a member.
type TeamInput struct {
	Name      string   `json:"name" validate:"required,max=64"`
	ProjectID string   `json:"projectId" validate:"required"`
	Members   []string `json:"members" validate:"dive,required"`
	LeaderID  string   `json:"leaderId" validate:"required"`
}
