package domain

import "time"

// CloudLink is a named external download link. It only exists inside the
// Links of one ResourceItem.
type CloudLink struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourceItem is a downloadable resource bundle
type ResourceItem struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	CategoryID  string      `json:"categoryId"`
	Links       []CloudLink `json:"links"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// EntityID returns the resource id
func (r ResourceItem) EntityID() string { return r.ID }

// LinkIndex returns the position of link id in r.Links, or -1
func (r ResourceItem) LinkIndex(id string) int {
	for i, l := range r.Links {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// CloudLinkInput holds the fields of a new link
type CloudLinkInput struct {
	Name string `json:"name" validate:"required,max=64"`
	URL  string `json:"url" validate:"required,url"`
}

// CloudLinkPatch holds the link fields that may change
type CloudLinkPatch struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	URL  *string `json:"url,omitempty" validate:"omitempty,url"`
}

// Apply copies the set fields onto l
func (p CloudLinkPatch) Apply(l *CloudLink) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
}

// ResourceInput holds the fields of a new resource
type ResourceInput struct {
	Name        string           `json:"name" validate:"required,max=128"`
	Description string           `json:"description" validate:"max=512"`
	CategoryID  string           `json:"categoryId" validate:"required"`
	Links       []CloudLinkInput `json:"links" validate:"dive"`
}

// ResourcePatch holds the resource fields that may change. Links are edited
// one at a time through the link operations.
type ResourcePatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=512"`
	CategoryID  *string `json:"categoryId,omitempty" validate:"omitempty,min=1"`
}

// Apply copies the set fields onto r
func (p ResourcePatch) Apply(r *ResourceItem) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.CategoryID != nil {
		r.CategoryID = *p.CategoryID
	}
}
