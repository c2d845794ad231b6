package domain

// Category groups tools, articles or resources. The three category
// collections share this shape; tool categories leave Description empty.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
}

// EntityID returns the category id
func (c Category) EntityID() string { return c.ID }

// CategoryInput holds the fields of a new category
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=256"`
	Icon        string `json:"icon" validate:"required,max=64"`
}

// CategoryPatch holds the category fields that may change
type CategoryPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=256"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,min=1,max=64"`
}

// Apply copies the set fields onto c
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
}
