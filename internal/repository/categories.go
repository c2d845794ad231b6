package repository

import (
	"context"
	"slices"

	"tooldir/internal/domain"
	"tooldir/internal/events"
)

// CategoryRepository manages one category collection and keeps the records
// that reference it pointing at a category that exists
type CategoryRepository struct {
	*Collection[domain.Category]
	prefix string

	// reassign moves members of category from to category to and returns
	// the pending write, or ok=false if nothing referenced from
	reassign func(ctx context.Context, from, to string) (w write, memberKey string, ok bool, err error)
}

func newCategoryRepository[E domain.Entity](
	cats *Collection[domain.Category],
	prefix string,
	members *Collection[E],
	ref func(*E) *string,
) *CategoryRepository {
	return &CategoryRepository{
		Collection: cats,
		prefix:     prefix,
		reassign: func(ctx context.Context, from, to string) (write, string, bool, error) {
			items, err := members.load(ctx)
			if err != nil {
				return write{}, "", false, err
			}
			moved := 0
			for i := range items {
				if p := ref(&items[i]); *p == from {
					*p = to
					moved++
				}
			}
			if moved == 0 {
				return write{}, "", false, nil
			}
			return members.write(items), members.key, true, nil
		},
	}
}

// Add appends a category with a generated id
func (r *CategoryRepository) Add(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	return r.insert(ctx, domain.Category{
		ID:          r.newID(r.prefix),
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
	})
}

// Update applies patch to the category with id. It returns nil if there is
// no such category.
func (r *CategoryRepository) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	return r.modify(ctx, id, patch.Apply)
}

// Delete removes a category. It refuses when only one category is left.
// Records referencing the removed category move to the first remaining
// one; both collections are written together.
func (r *CategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cats, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	if len(cats) <= 1 {
		return false, nil
	}
	i := indexOf(cats, id)
	if i < 0 {
		return false, nil
	}
	cats = slices.Delete(cats, i, i+1)

	writes := []write{r.write(cats)}
	w, memberKey, moved, err := r.reassign(ctx, id, cats[0].ID)
	if err != nil {
		return false, err
	}
	if moved {
		writes = append(writes, w)
	}
	if err := r.saveAll(ctx, writes...); err != nil {
		return false, err
	}

	r.notify(r.key, events.OpDeleted, id)
	if moved {
		r.notify(memberKey, events.OpReplaced, "")
	}
	return true, nil
}
