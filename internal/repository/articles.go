package repository

import (
	"context"
	"slices"

	"tooldir/internal/domain"
)

// ArticleRepository manages articles
type ArticleRepository struct {
	*Collection[domain.Article]
}

// ListByCategory returns the articles in categoryID
func (r *ArticleRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Article, error) {
	return r.filter(ctx, func(a domain.Article) bool { return a.CategoryID == categoryID })
}

// ListPinnedFirst returns every article with the update log first and the
// rest by UpdatedAt, newest first. Articles updated at the same time keep
// their stored order.
func (r *ArticleRepository) ListPinnedFirst(ctx context.Context) ([]domain.Article, error) {
	articles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(articles, func(a, b domain.Article) int {
		switch {
		case a.ID == domain.ArticleUpdateLogID:
			return -1
		case b.ID == domain.ArticleUpdateLogID:
			return 1
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return articles, nil
}

// Add creates an article stamped with the current time
func (r *ArticleRepository) Add(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	now := r.now()
	return r.insert(ctx, domain.Article{
		ID:         r.newID(prefixArticle),
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: in.CategoryID,
		ImageURL:   in.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// Update applies patch and refreshes UpdatedAt. It returns nil if there is
// no such article.
func (r *ArticleRepository) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	return r.modify(ctx, id, func(a *domain.Article) {
		patch.Apply(a)
		a.UpdatedAt = r.now()
	})
}
