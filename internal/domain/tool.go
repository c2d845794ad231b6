package domain

// Tool is a catalogue entry
type Tool struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	URL         string `json:"url"`
}

// EntityID returns the tool id
func (t Tool) EntityID() string { return t.ID }

// Fallbacks used when a tool's category has no entry in the lookup tables
const (
	DefaultToolColor = "bg-gray-500"
	DefaultToolIcon  = "fa-question"
)

// toolColors maps the built-in category ids to a badge color
var toolColors = map[string]string{
	"productivity": "bg-blue-500",
	"design":       "bg-purple-500",
	"development":  "bg-green-500",
	"utilities":    "bg-orange-500",
}

// ToolColor returns the badge color for tools in categoryID
func ToolColor(categoryID string) string {
	if c, ok := toolColors[categoryID]; ok {
		return c
	}
	return DefaultToolColor
}

// ToolInput holds the fields of a new tool. Color and icon are derived.
type ToolInput struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=512"`
	URL         string `json:"url" validate:"required,max=2048"`
	Category    string `json:"category" validate:"required"`
}

// ToolPatch holds the tool fields that may change
type ToolPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=512"`
	URL         *string `json:"url,omitempty" validate:"omitempty,min=1,max=2048"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1"`
}

// Apply copies the set fields onto t. It does not touch color or icon.
func (p ToolPatch) Apply(t *Tool) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.URL != nil {
		t.URL = *p.URL
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
}
