package service

import (
	"context"

	"megawarez/internal/cache"
	dom "megawarez/internal/domain"
	"megawarez/internal/repo"
)

type CategoryService struct {
	*catalogCore
}

func (s *CategoryService) List(ctx context.Context) ([]dom.Category, error) {
	return cachedList(ctx, s.catalogCore, cache.ListKey(cache.KindCategory), func(ctx context.Context) ([]dom.Category, error) {
		return orEmpty(s.store.Categories().List(ctx))
	})
}

// ListOrdered sorts by field ("name", "createdAt", ...) in direction asc|desc.
func (s *CategoryService) ListOrdered(ctx context.Context, field, direction string) ([]dom.Category, error) {
	order, err := dom.ParseOrder(dom.CategoryColumns, field, direction)
	if err != nil {
		return nil, err
	}
	return cachedList(ctx, s.catalogCore, cache.OrderedKey(cache.KindCategory, order), func(ctx context.Context) ([]dom.Category, error) {
		return orEmpty(s.store.Categories().ListOrdered(ctx, order))
	})
}

func (s *CategoryService) Get(ctx context.Context, id int64) (dom.Category, error) {
	return s.store.Categories().GetByID(ctx, id)
}

func (s *CategoryService) Search(ctx context.Context, term string) ([]dom.Category, error) {
	return cachedList(ctx, s.catalogCore, cache.SearchKey(cache.KindCategory, term), func(ctx context.Context) ([]dom.Category, error) {
		return searchUnion(ctx, term, s.store.Categories().Search,
			func(c dom.Category) int64 { return c.ID },
			func(c dom.Category) string { return c.Name })
	})
}

func (s *CategoryService) Create(ctx context.Context, name string) (dom.Category, error) {
	name, err := cleanName(name)
	if err != nil {
		return dom.Category{}, err
	}
	c, err := s.store.Categories().Create(ctx, name)
	if err != nil {
		return dom.Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CategoryService) Rename(ctx context.Context, id int64, name string) (dom.Category, error) {
	name, err := cleanName(name)
	if err != nil {
		return dom.Category{}, err
	}
	c, err := s.store.Categories().Rename(ctx, id, name)
	if err != nil {
		return dom.Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

// Delete removes the category with its subcategories, their products and
// every download of those products in one transaction.
func (s *CategoryService) Delete(ctx context.Context, id int64) (dom.Category, dom.Removed, error) {
	var (
		c       dom.Category
		removed dom.Removed
	)
	err := s.store.InTx(ctx, func(ctx context.Context, tx repo.Store) error {
		var err error
		c, removed, err = tx.Categories().Delete(ctx, id)
		return err
	})
	if err != nil {
		return dom.Category{}, dom.Removed{}, err
	}
	s.invalidate(ctx)
	s.log.Info(ctx, "category deleted", "id", id, "rows_removed", removed.Total())
	return c, removed, nil
}
