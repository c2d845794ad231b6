package domain

import "time"

// Article is a blog entry
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID string    `json:"categoryId"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EntityID returns the article id
func (a Article) EntityID() string { return a.ID }

// ArticleInput holds the fields of a new article
type ArticleInput struct {
	Title      string `json:"title" validate:"required,max=128"`
	Content    string `json:"content" validate:"required"`
	CategoryID string `json:"categoryId" validate:"required"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url"`
}

// ArticlePatch holds the article fields that may change
type ArticlePatch struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=128"`
	Content    *string `json:"content,omitempty" validate:"omitempty,min=1"`
	CategoryID *string `json:"categoryId,omitempty" validate:"omitempty,min=1"`
	ImageURL   *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// Apply copies the set fields onto a
func (p ArticlePatch) Apply(a *Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.CategoryID != nil {
		a.CategoryID = *p.CategoryID
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
}
