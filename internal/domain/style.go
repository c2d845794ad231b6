package domain

import "maps"

// AppStyle is a named set of presentation variables
type AppStyle struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsDefault   bool              `json:"isDefault"`
	Variables   map[string]string `json:"variables"`
}

// EntityID returns the style id
func (s AppStyle) EntityID() string { return s.ID }

// StyleInput holds the fields of a new style
type StyleInput struct {
	Name        string            `json:"name" validate:"required,max=64"`
	Description string            `json:"description" validate:"max=256"`
	IsDefault   bool              `json:"isDefault"`
	Variables   map[string]string `json:"variables" validate:"dive,keys,required,endkeys,required"`
}

// StylePatch holds the style fields that may change. Variables replaces the
// whole map.
type StylePatch struct {
	Name        *string            `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=256"`
	IsDefault   *bool              `json:"isDefault,omitempty"`
	Variables   *map[string]string `json:"variables,omitempty"`
}

// Apply copies the set fields onto s
func (p StylePatch) Apply(s *AppStyle) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.IsDefault != nil {
		s.IsDefault = *p.IsDefault
	}
	if p.Variables != nil {
		s.Variables = maps.Clone(*p.Variables)
	}
}
