package service

import (
	"context"

	"megawarez/internal/cache"
	dom "megawarez/internal/domain"
	"megawarez/internal/repo"
)

type ProductService struct {
	*catalogCore
}

func (s *ProductService) List(ctx context.Context) ([]dom.Product, error) {
	return cachedList(ctx, s.catalogCore, cache.ListKey(cache.KindProduct), func(ctx context.Context) ([]dom.Product, error) {
		return orEmpty(s.store.Products().List(ctx))
	})
}

func (s *ProductService) ListOrdered(ctx context.Context, field, direction string) ([]dom.Product, error) {
	order, err := dom.ParseOrder(dom.ProductColumns, field, direction)
	if err != nil {
		return nil, err
	}
	return cachedList(ctx, s.catalogCore, cache.OrderedKey(cache.KindProduct, order), func(ctx context.Context) ([]dom.Product, error) {
		return orEmpty(s.store.Products().ListOrdered(ctx, order))
	})
}

func (s *ProductService) ListBySubcategory(ctx context.Context, subcategoryID int64) ([]dom.Product, error) {
	if _, err := s.store.Subcategories().GetByID(ctx, subcategoryID); err != nil {
		return nil, err
	}
	return orEmpty(s.store.Products().ListBySubcategory(ctx, subcategoryID))
}

func (s *ProductService) Get(ctx context.Context, id int64) (dom.Product, error) {
	return s.store.Products().GetByID(ctx, id)
}

func (s *ProductService) Search(ctx context.Context, term string) ([]dom.Product, error) {
	return cachedList(ctx, s.catalogCore, cache.SearchKey(cache.KindProduct, term), func(ctx context.Context) ([]dom.Product, error) {
		return searchUnion(ctx, term, s.store.Products().Search,
			func(p dom.Product) int64 { return p.ID },
			func(p dom.Product) string { return p.Name })
	})
}

func (s *ProductService) Create(ctx context.Context, subcategoryID int64, name string) (dom.Product, error) {
	name, err := cleanName(name)
	if err != nil {
		return dom.Product{}, err
	}
	p, err := s.store.Products().Create(ctx, subcategoryID, name)
	if err != nil {
		return dom.Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *ProductService) Rename(ctx context.Context, id int64, name string) (dom.Product, error) {
	name, err := cleanName(name)
	if err != nil {
		return dom.Product{}, err
	}
	p, err := s.store.Products().Rename(ctx, id, name)
	if err != nil {
		return dom.Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

// Move reattaches the product to another subcategory.
func (s *ProductService) Move(ctx context.Context, id, subcategoryID int64) (dom.Product, error) {
	p, err := s.store.Products().Move(ctx, id, subcategoryID)
	if err != nil {
		return dom.Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) (dom.Product, dom.Removed, error) {
	var (
		p       dom.Product
		removed dom.Removed
	)
	err := s.store.InTx(ctx, func(ctx context.Context, tx repo.Store) error {
		var err error
		p, removed, err = tx.Products().Delete(ctx, id)
		return err
	})
	if err != nil {
		return dom.Product{}, dom.Removed{}, err
	}
	s.invalidate(ctx)
	return p, removed, nil
}
