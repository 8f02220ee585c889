package repo

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	dom "megawarez/internal/domain"
)

// MemoryStore implements Store in process memory. It backs STORAGE_DRIVER=memory
// runs and the service tests; it enforces the same unique, foreign key and
// cascade rules as the Postgres schema.
type MemoryStore struct {
	mu   *sync.Mutex
	d    *memData
	inTx bool
	now  func() time.Time
}

type memData struct {
	lastID        map[string]int64
	users         map[int64]dom.User
	sessions      map[int64]dom.Session
	categories    map[int64]dom.Category
	subcategories map[int64]dom.Subcategory
	products      map[int64]dom.Product
	downloads     map[int64]dom.Download
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu: &sync.Mutex{},
		d: &memData{
			lastID:        map[string]int64{},
			users:         map[int64]dom.User{},
			sessions:      map[int64]dom.Session{},
			categories:    map[int64]dom.Category{},
			subcategories: map[int64]dom.Subcategory{},
			products:      map[int64]dom.Product{},
			downloads:     map[int64]dom.Download{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (d *memData) clone() *memData {
	return &memData{
		lastID:        maps.Clone(d.lastID),
		users:         maps.Clone(d.users),
		sessions:      maps.Clone(d.sessions),
		categories:    maps.Clone(d.categories),
		subcategories: maps.Clone(d.subcategories),
		products:      maps.Clone(d.products),
		downloads:     maps.Clone(d.downloads),
	}
}

func (d *memData) nextID(table string) int64 {
	d.lastID[table]++
	return d.lastID[table]
}

// lock takes the store mutex unless the caller already runs inside InTx.
func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) stamp() *time.Time {
	t := s.now()
	return &t
}

func (s *MemoryStore) Users() UserRepo                { return memUserRepo{s} }
func (s *MemoryStore) Sessions() SessionRepo          { return memSessionRepo{s} }
func (s *MemoryStore) Categories() CategoryRepo       { return memCategoryRepo{s} }
func (s *MemoryStore) Subcategories() SubcategoryRepo { return memSubcategoryRepo{s} }
func (s *MemoryStore) Products() ProductRepo          { return memProductRepo{s} }
func (s *MemoryStore) Downloads() DownloadRepo        { return memDownloadRepo{s} }

// InTx serializes fn against every other store operation and restores the
// previous state when fn fails or panics.
func (s *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) (err error) {
	if s.inTx {
		return fn(ctx, s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	defer func() {
		if p := recover(); p != nil {
			*s.d = *snapshot
			panic(p)
		}
		if err != nil {
			*s.d = *snapshot
		}
	}()

	return fn(ctx, &MemoryStore{mu: s.mu, d: s.d, inTx: true, now: s.now})
}

// dropProducts removes the downloads of the given products, then the products.
func (d *memData) dropProducts(ids []int64, removed *dom.Removed) {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for id, dl := range d.downloads {
		if set[dl.ProductID] {
			delete(d.downloads, id)
			removed.Downloads++
		}
	}
	for _, id := range ids {
		delete(d.products, id)
		removed.Products++
	}
}

func (d *memData) dropSubcategories(ids []int64, removed *dom.Removed) {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	var products []int64
	for id, p := range d.products {
		if set[p.SubcategoryID] {
			products = append(products, id)
		}
	}
	d.dropProducts(products, removed)
	for _, id := range ids {
		delete(d.subcategories, id)
		removed.Subcategories++
	}
}

func matches(mode dom.MatchMode, name, term string) bool {
	name, term = strings.ToLower(name), strings.ToLower(term)
	switch mode {
	case dom.MatchPrefix:
		return strings.HasPrefix(name, term)
	case dom.MatchSuffix:
		return strings.HasSuffix(name, term)
	}
	return strings.Contains(name, term)
}

// compareColumn orders values the way Postgres does: NULL sorts after
// everything ascending.
func compareColumn(a, b any) int {
	switch x := a.(type) {
	case int64:
		return cmpOrdered(x, b.(int64))
	case string:
		return strings.Compare(x, b.(string))
	case time.Time:
		return x.Compare(b.(time.Time))
	case *time.Time:
		y := b.(*time.Time)
		switch {
		case x == nil && y == nil:
			return 0
		case x == nil:
			return 1
		case y == nil:
			return -1
		}
		return x.Compare(*y)
	}
	panic(fmt.Sprintf("repo: unsortable column type %T", a))
}

func cmpOrdered(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// sortRows sorts list by order.Column with an id tiebreaker.
func sortRows[T any](list []T, order dom.Order, column func(T, string) any) {
	slices.SortStableFunc(list, func(a, b T) int {
		c := compareColumn(column(a, order.Column), column(b, order.Column))
		if c == 0 {
			c = cmpOrdered(column(a, "id").(int64), column(b, "id").(int64))
		}
		if order.Desc {
			return -c
		}
		return c
	})
}

func sortedValues[T any](m map[int64]T, keep func(T) bool) []T {
	ids := slices.Sorted(maps.Keys(m))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if keep == nil || keep(m[id]) {
			out = append(out, m[id])
		}
	}
	return out
}

func byName[T any](name func(T) string, id func(T) int64) func(a, b T) int {
	return func(a, b T) int {
		if c := strings.Compare(name(a), name(b)); c != 0 {
			return c
		}
		return cmpOrdered(id(a), id(b))
	}
}
