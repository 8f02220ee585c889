package repo

import (
	"context"
	"slices"

	dom "megawarez/internal/domain"
)

type memUserRepo struct{ s *MemoryStore }

func (r memUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.d.users {
		if u.Username == username {
			return dom.User{}, dom.ErrConflict
		}
	}
	u := dom.User{
		ID:           r.s.d.nextID("users"),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    r.s.now(),
	}
	r.s.d.users[u.ID] = u
	return u, nil
}

func (r memUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	defer r.s.lock()()
	u, ok := r.s.d.users[id]
	if !ok {
		return dom.User{}, dom.ErrNotFound
	}
	return u, nil
}

func (r memUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.d.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, dom.ErrNotFound
}

func (r memUserRepo) List(ctx context.Context) ([]dom.User, error) {
	defer r.s.lock()()
	return sortedValues(r.s.d.users, nil), nil
}

func (r memUserRepo) UpdateUsername(ctx context.Context, id int64, username string) (dom.User, error) {
	defer r.s.lock()()
	u, ok := r.s.d.users[id]
	if !ok {
		return dom.User{}, dom.ErrNotFound
	}
	for _, other := range r.s.d.users {
		if other.ID != id && other.Username == username {
			return dom.User{}, dom.ErrConflict
		}
	}
	u.Username = username
	u.UpdatedAt = r.s.stamp()
	r.s.d.users[id] = u
	return u, nil
}

func (r memUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) (dom.User, error) {
	defer r.s.lock()()
	u, ok := r.s.d.users[id]
	if !ok {
		return dom.User{}, dom.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = r.s.stamp()
	r.s.d.users[id] = u
	return u, nil
}

func (r memUserRepo) Delete(ctx context.Context, id int64) (dom.User, dom.Removed, error) {
	defer r.s.lock()()
	var removed dom.Removed
	u, ok := r.s.d.users[id]
	if !ok {
		return dom.User{}, removed, dom.ErrNotFound
	}
	for did, dl := range r.s.d.downloads {
		if dl.UserID == id {
			delete(r.s.d.downloads, did)
			removed.Downloads++
		}
	}
	for sid, sess := range r.s.d.sessions {
		if sess.UserID == id {
			delete(r.s.d.sessions, sid)
			removed.Sessions++
		}
	}
	delete(r.s.d.users, id)
	removed.Users = 1
	return u, removed, nil
}

type memSessionRepo struct{ s *MemoryStore }

func (r memSessionRepo) Create(ctx context.Context, userID int64, token string) (dom.Session, error) {
	defer r.s.lock()()
	if _, ok := r.s.d.users[userID]; !ok {
		return dom.Session{}, dom.ErrReferential
	}
	for _, sess := range r.s.d.sessions {
		if sess.Token == token {
			return dom.Session{}, dom.ErrConflict
		}
	}
	sess := dom.Session{
		ID:        r.s.d.nextID("sessions"),
		UserID:    userID,
		Token:     token,
		CreatedAt: r.s.now(),
	}
	r.s.d.sessions[sess.ID] = sess
	return sess, nil
}

func (r memSessionRepo) GetByID(ctx context.Context, id int64) (dom.Session, error) {
	defer r.s.lock()()
	sess, ok := r.s.d.sessions[id]
	if !ok {
		return dom.Session{}, dom.ErrNotFound
	}
	return sess, nil
}

func (r memSessionRepo) GetByToken(ctx context.Context, token string) (dom.Session, error) {
	defer r.s.lock()()
	for _, sess := range r.s.d.sessions {
		if sess.Token == token {
			return sess, nil
		}
	}
	return dom.Session{}, dom.ErrNotFound
}

func (r memSessionRepo) ListByUser(ctx context.Context, userID int64) ([]dom.Session, error) {
	defer r.s.lock()()
	return sortedValues(r.s.d.sessions, func(sess dom.Session) bool {
		return sess.UserID == userID
	}), nil
}

func (r memSessionRepo) Delete(ctx context.Context, id int64) (dom.Session, error) {
	defer r.s.lock()()
	sess, ok := r.s.d.sessions[id]
	if !ok {
		return dom.Session{}, dom.ErrNotFound
	}
	delete(r.s.d.sessions, id)
	return sess, nil
}

type memCategoryRepo struct{ s *MemoryStore }

func categoryColumn(c dom.Category, column string) any {
	switch column {
	case "name":
		return c.Name
	case "created_at":
		return c.CreatedAt
	case "updated_at":
		return c.UpdatedAt
	}
	return c.ID
}

func (r memCategoryRepo) Create(ctx context.Context, name string) (dom.Category, error) {
	defer r.s.lock()()
	c := dom.Category{ID: r.s.d.nextID("categories"), Name: name, CreatedAt: r.s.now()}
	r.s.d.categories[c.ID] = c
	return c, nil
}

func (r memCategoryRepo) GetByID(ctx context.Context, id int64) (dom.Category, error) {
	defer r.s.lock()()
	c, ok := r.s.d.categories[id]
	if !ok {
		return dom.Category{}, dom.ErrNotFound
	}
	return c, nil
}

func (r memCategoryRepo) List(ctx context.Context) ([]dom.Category, error) {
	defer r.s.lock()()
	return sortedValues(r.s.d.categories, nil), nil
}

func (r memCategoryRepo) ListOrdered(ctx context.Context, order dom.Order) ([]dom.Category, error) {
	defer r.s.lock()()
	list := sortedValues(r.s.d.categories, nil)
	sortRows(list, order, categoryColumn)
	return list, nil
}

func (r memCategoryRepo) Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Category, error) {
	defer r.s.lock()()
	list := sortedValues(r.s.d.categories, func(c dom.Category) bool { return matches(mode, c.Name, term) })
	slices.SortFunc(list, byName(
		func(c dom.Category) string { return c.Name },
		func(c dom.Category) int64 { return c.ID },
	))
	return list, nil
}

func (r memCategoryRepo) Rename(ctx context.Context, id int64, name string) (dom.Category, error) {
	defer r.s.lock()()
	c, ok := r.s.d.categories[id]
	if !ok {
		return dom.Category{}, dom.ErrNotFound
	}
	c.Name = name
	c.UpdatedAt = r.s.stamp()
	r.s.d.categories[id] = c
	return c, nil
}

func (r memCategoryRepo) Delete(ctx context.Context, id int64) (dom.Category, dom.Removed, error) {
	defer r.s.lock()()
	var removed dom.Removed
	c, ok := r.s.d.categories[id]
	if !ok {
		return dom.Category{}, removed, dom.ErrNotFound
	}
	var subs []int64
	for sid, sub := range r.s.d.subcategories {
		if sub.CategoryID == id {
			subs = append(subs, sid)
		}
	}
	r.s.d.dropSubcategories(subs, &removed)
	delete(r.s.d.categories, id)
	removed.Categories = 1
	return c, removed, nil
}

type memSubcategoryRepo struct{ s *MemoryStore }

func subcategoryColumn(s dom.Subcategory, column string) any {
	switch column {
	case "name":
		return s.Name
	case "category_id":
		return s.CategoryID
	case "created_at":
		return s.CreatedAt
	case "updated_at":
		return s.UpdatedAt
	}
	return s.ID
}

func (r memSubcategoryRepo) Create(ctx context.Context, categoryID int64, name string) (dom.Subcategory, error) {
	defer r.s.lock()()
	if _, ok := r.s.d.categories[categoryID]; !ok {
		return dom.Subcategory{}, dom.ErrReferential
	}
	sub := dom.Subcategory{
		ID:         r.s.d.nextID("subcategories"),
		CategoryID: categoryID,
		Name:       name,
		CreatedAt:  r.s.now(),
	}
	r.s.d.subcategories[sub.ID] = sub
	return sub, nil
}

func (r memSubcategoryRepo) GetByID(ctx context.Context, id int64) (dom.Subcategory, error) {
	defer r.s.lock()()
	sub, ok := r.s.d.subcategories[id]
	if !ok {
		return dom.Subcategory{}, dom.ErrNotFound
	}
	return sub, nil
}

func (r memSubcategoryRepo) List(ctx context.Context) ([]dom.Subcategory, error) {
	defer r.s.lock()()
	return sortedValues(r.s.d.subcategories, nil), nil
}

func (r memSubcategoryRepo) ListByCategory(ctx context.Context, categoryID int64) ([]dom.Subcategory, error) {
	defer r.s.lock()()
	return sortedValues(r.s.d.subcategories, func(sub dom.Subcategory) bool {
		return sub.CategoryID == categoryID
	}), nil
}

func (r memSubcategoryRepo) ListOrdered(ctx context.Context, order dom.Order) ([]dom.Subcategory, error) {
	defer r.s.lock()()
	list := sortedValues(r.s.d.subcategories, nil)
	sortRows(list, order, subcategoryColumn)
	return list, nil
}

func (r memSubcategoryRepo) Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Subcategory, error) {
	defer r.s.lock()()
	list := sortedValues(r.s.d.subcategories, func(sub dom.Subcategory) bool { return matches(mode, sub.Name, term) })
	slices.SortFunc(list, byName(
		func(sub dom.Subcategory) string { return sub.Name },
		func(sub dom.Subcategory) int64 { return sub.ID },
	))
	return list, nil
}

func (r memSubcategoryRepo) Rename(ctx context.Context, id int64, name string) (dom.Subcategory, error) {
	defer r.s.lock()()
	sub, ok := r.s.d.subcategories[id]
	if !ok {
		return dom.Subcategory{}, dom.ErrNotFound
	}
	sub.Name = name
	sub.UpdatedAt = r.s.stamp()
	r.s.d.subcategories[id] = sub
	return sub, nil
}

func (r memSubcategoryRepo) Delete(ctx context.Context, id int64) (dom.Subcategory, dom.Removed, error) {
	defer r.s.lock()()
	var removed dom.Removed
	sub, ok := r.s.d.subcategories[id]
	if !ok {
		return dom.Subcategory{}, removed, dom.ErrNotFound
	}
	r.s.d.dropSubcategories([]int64{id}, &removed)
	return sub, removed, nil
}

type memProductRepo struct{ s *MemoryStore }

func productColumn(p dom.Product, column string) any {
	switch column {
	case "name":
		return p.Name
	case "subcategory_id":
		return p.SubcategoryID
	case "created_at":
		return p.CreatedAt
	case "updated_at":
		return p.UpdatedAt
	}
	return p.ID
}

func (r memProductRepo) Create(ctx context.Context, subcategoryID int64, name string) (dom.Product, error) {
	defer r.s.lock()()
	if _, ok := r.s.d.subcategories[subcategoryID]; !ok {
		return dom.Product{}, dom.ErrReferential
	}
	p := dom.Product{
		ID:            r.s.d.nextID("products"),
		SubcategoryID: subcategoryID,
		Name:          name,
		CreatedAt:     r.s.now(),
	}
	r.s.d.products[p.ID] = p
	return p, nil
}

func (r memProductRepo) GetByID(ctx context.Context, id int64) (dom.Product, error) {
	defer r.s.lock()()
	p, ok := r.s.d.products[id]
	if !ok {
		return dom.Product{}, dom.ErrNotFound
	}
	return p, nil
}

func (r memProductRepo) List(ctx context.Context) ([]dom.Product, error) {
	defer r.s.lock()()
	return sortedValues(r.s.d.products, nil), nil
}

func (r memProductRepo) ListBySubcategory(ctx context.Context, subcategoryID int64) ([]dom.Product, error) {
	defer r.s.lock()()
	return sortedValues(r.s.d.products, func(p dom.Product) bool {
		return p.SubcategoryID == subcategoryID
	}), nil
}

func (r memProductRepo) ListOrdered(ctx context.Context, order dom.Order) ([]dom.Product, error) {
	defer r.s.lock()()
	list := sortedValues(r.s.d.products, nil)
	sortRows(list, order, productColumn)
	return list, nil
}

func (r memProductRepo) Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Product, error) {
	defer r.s.lock()()
	list := sortedValues(r.s.d.products, func(p dom.Product) bool { return matches(mode, p.Name, term) })
	slices.SortFunc(list, byName(
		func(p dom.Product) string { return p.Name },
		func(p dom.Product) int64 { return p.ID },
	))
	return list, nil
}

func (r memProductRepo) Rename(ctx context.Context, id int64, name string) (dom.Product, error) {
	defer r.s.lock()()
	p, ok := r.s.d.products[id]
	if !ok {
		return dom.Product{}, dom.ErrNotFound
	}
	p.Name = name
	p.UpdatedAt = r.s.stamp()
	r.s.d.products[id] = p
	return p, nil
}

func (r memProductRepo) Move(ctx context.Context, id, subcategoryID int64) (dom.Product, error) {
	defer r.s.lock()()
	p, ok := r.s.d.products[id]
	if !ok {
		return dom.Product{}, dom.ErrNotFound
	}
	if _, ok := r.s.d.subcategories[subcategoryID]; !ok {
		return dom.Product{}, dom.ErrReferential
	}
	p.SubcategoryID = subcategoryID
	p.UpdatedAt = r.s.stamp()
	r.s.d.products[id] = p
	return p, nil
}

func (r memProductRepo) Delete(ctx context.Context, id int64) (dom.Product, dom.Removed, error) {
	defer r.s.lock()()
	var removed dom.Removed
	p, ok := r.s.d.products[id]
	if !ok {
		return dom.Product{}, removed, dom.ErrNotFound
	}
	r.s.d.dropProducts([]int64{id}, &removed)
	return p, removed, nil
}

type memDownloadRepo struct{ s *MemoryStore }

func (r memDownloadRepo) Create(ctx context.Context, userID, productID int64) (dom.Download, error) {
	defer r.s.lock()()
	if _, ok := r.s.d.users[userID]; !ok {
		return dom.Download{}, dom.ErrReferential
	}
	if _, ok := r.s.d.products[productID]; !ok {
		return dom.Download{}, dom.ErrReferential
	}
	d := dom.Download{
		ID:        r.s.d.nextID("downloads"),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: r.s.now(),
	}
	r.s.d.downloads[d.ID] = d
	return d, nil
}

func (r memDownloadRepo) view(d dom.Download) dom.DownloadView {
	return dom.DownloadView{
		ID:        d.ID,
		Product:   r.s.d.products[d.ProductID].Name,
		User:      r.s.d.users[d.UserID].Username,
		CreatedAt: d.CreatedAt,
	}
}

func (r memDownloadRepo) GetView(ctx context.Context, id int64) (dom.DownloadView, error) {
	defer r.s.lock()()
	d, ok := r.s.d.downloads[id]
	if !ok {
		return dom.DownloadView{}, dom.ErrNotFound
	}
	return r.view(d), nil
}

func (r memDownloadRepo) ListViews(ctx context.Context) ([]dom.DownloadView, error) {
	defer r.s.lock()()
	return r.views(nil), nil
}

func (r memDownloadRepo) ListViewsByUser(ctx context.Context, userID int64) ([]dom.DownloadView, error) {
	defer r.s.lock()()
	return r.views(func(d dom.Download) bool { return d.UserID == userID }), nil
}

func (r memDownloadRepo) views(keep func(dom.Download) bool) []dom.DownloadView {
	list := sortedValues(r.s.d.downloads, keep)
	out := make([]dom.DownloadView, len(list))
	for i, d := range list {
		out[i] = r.view(d)
	}
	return out
}
