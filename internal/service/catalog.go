package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/singleflight"

	"megawarez/internal/cache"
	dom "megawarez/internal/domain"
	"megawarez/internal/logging"
	"megawarez/internal/repo"
)

// catalogCore is shared by the category, subcategory and product services:
// one store, one optional read cache and one singleflight group.
type catalogCore struct {
	store repo.Store
	cache *cache.CatalogCache
	sf    *singleflight.Group
	log   logging.Logger
}

// Catalog bundles the three catalog services over a shared core.
type Catalog struct {
	Categories    *CategoryService
	Subcategories *SubcategoryService
	Products      *ProductService
}

// NewCatalog wires the catalog services. If c is nil, caching is disabled.
func NewCatalog(store repo.Store, c *cache.CatalogCache, log logging.Logger) *Catalog {
	core := &catalogCore{store: store, cache: c, sf: &singleflight.Group{}, log: log}
	return &Catalog{
		Categories:    &CategoryService{core},
		Subcategories: &SubcategoryService{core},
		Products:      &ProductService{core},
	}
}

// cachedList serves key from the cache, falling back to load. Cache failures
// are logged and never fail the read.
func cachedList[T any](ctx context.Context, c *catalogCore, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if c.cache == nil {
		return load(ctx)
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		var list []T
		hit, err := c.cache.Get(ctx, key, &list)
		if err != nil {
			c.log.Warn(ctx, "catalog cache read failed", "key", key, "err", err)
		}
		if hit {
			return list, nil
		}
		list, err = load(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, key, list); err != nil {
			c.log.Warn(ctx, "catalog cache write failed", "key", key, "err", err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

func (c *catalogCore) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.InvalidateAll(ctx); err != nil {
		c.log.Warn(ctx, "catalog cache invalidation failed", "err", err)
	}
}

// searchUnion runs search once per match mode and merges the hits: each id
// appears once and the result is sorted by name, then id.
func searchUnion[T any](ctx context.Context, term string, search func(context.Context, dom.MatchMode, string) ([]T, error), id func(T) int64, name func(T) string) ([]T, error) {
	seen := make(map[int64]bool)
	out := []T{}
	for _, mode := range dom.MatchModes {
		list, err := search(ctx, mode, term)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", mode, err)
		}
		for _, v := range list {
			if !seen[id(v)] {
				seen[id(v)] = true
				out = append(out, v)
			}
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		return cmp.Or(strings.Compare(name(a), name(b)), cmp.Compare(id(a), id(b)))
	})
	return out, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name must not be blank", dom.ErrValidation)
	}
	return name, nil
}

// orEmpty turns a nil slice into an empty one so lists encode as [].
func orEmpty[T any](list []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}
