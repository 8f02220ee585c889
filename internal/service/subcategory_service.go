package service

import (
	"context"

	"megawarez/internal/cache"
	dom "megawarez/internal/domain"
	"megawarez/internal/repo"
)

type SubcategoryService struct {
	*catalogCore
}

func (s *SubcategoryService) List(ctx context.Context) ([]dom.Subcategory, error) {
	return cachedList(ctx, s.catalogCore, cache.ListKey(cache.KindSubcategory), func(ctx context.Context) ([]dom.Subcategory, error) {
		return orEmpty(s.store.Subcategories().List(ctx))
	})
}

func (s *SubcategoryService) ListOrdered(ctx context.Context, field, direction string) ([]dom.Subcategory, error) {
	order, err := dom.ParseOrder(dom.SubcategoryColumns, field, direction)
	if err != nil {
		return nil, err
	}
	return cachedList(ctx, s.catalogCore, cache.OrderedKey(cache.KindSubcategory, order), func(ctx context.Context) ([]dom.Subcategory, error) {
		return orEmpty(s.store.Subcategories().ListOrdered(ctx, order))
	})
}

// ListByCategory returns the subcategories of an existing category.
func (s *SubcategoryService) ListByCategory(ctx context.Context, categoryID int64) ([]dom.Subcategory, error) {
	if _, err := s.store.Categories().GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return orEmpty(s.store.Subcategories().ListByCategory(ctx, categoryID))
}

func (s *SubcategoryService) Get(ctx context.Context, id int64) (dom.Subcategory, error) {
	return s.store.Subcategories().GetByID(ctx, id)
}

func (s *SubcategoryService) Search(ctx context.Context, term string) ([]dom.Subcategory, error) {
	return cachedList(ctx, s.catalogCore, cache.SearchKey(cache.KindSubcategory, term), func(ctx context.Context) ([]dom.Subcategory, error) {
		return searchUnion(ctx, term, s.store.Subcategories().Search,
			func(v dom.Subcategory) int64 { return v.ID },
			func(v dom.Subcategory) string { return v.Name })
	})
}

// Create fails with domain.ErrReferential when categoryID does not exist.
func (s *SubcategoryService) Create(ctx context.Context, categoryID int64, name string) (dom.Subcategory, error) {
	name, err := cleanName(name)
	if err != nil {
		return dom.Subcategory{}, err
	}
	v, err := s.store.Subcategories().Create(ctx, categoryID, name)
	if err != nil {
		return dom.Subcategory{}, err
	}
	s.invalidate(ctx)
	return v, nil
}

func (s *SubcategoryService) Rename(ctx context.Context, id int64, name string) (dom.Subcategory, error) {
	name, err := cleanName(name)
	if err != nil {
		return dom.Subcategory{}, err
	}
	v, err := s.store.Subcategories().Rename(ctx, id, name)
	if err != nil {
		return dom.Subcategory{}, err
	}
	s.invalidate(ctx)
	return v, nil
}

func (s *SubcategoryService) Delete(ctx context.Context, id int64) (dom.Subcategory, dom.Removed, error) {
	var (
		v       dom.Subcategory
		removed dom.Removed
	)
	err := s.store.InTx(ctx, func(ctx context.Context, tx repo.Store) error {
		var err error
		v, removed, err = tx.Subcategories().Delete(ctx, id)
		return err
	})
	if err != nil {
		return dom.Subcategory{}, dom.Removed{}, err
	}
	s.invalidate(ctx)
	s.log.Info(ctx, "subcategory deleted", "id", id, "rows_removed", removed.Total())
	return v, removed, nil
}
