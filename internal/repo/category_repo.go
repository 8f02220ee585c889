package repo

import (
	"context"

	"megawarez/internal/dbx"
	dom "megawarez/internal/domain"
)

// CategoryRepo provides category persistence.
type CategoryRepo interface {
	Create(ctx context.Context, name string) (dom.Category, error)
	GetByID(ctx context.Context, id int64) (dom.Category, error)
	List(ctx context.Context) ([]dom.Category, error)
	ListOrdered(ctx context.Context, order dom.Order) ([]dom.Category, error)
	Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Category, error)
	Rename(ctx context.Context, id int64, name string) (dom.Category, error)
	// Delete removes the category and everything below it. Run it inside
	// Store.InTx.
	Delete(ctx context.Context, id int64) (dom.Category, dom.Removed, error)
}

const categoryColumns = `id, name, created_at, updated_at`

// PGCategoryRepo implements CategoryRepo with Postgres.
type PGCategoryRepo struct {
	db dbx.DBTX
}

// NewPGCategoryRepo returns a new PGCategoryRepo.
func NewPGCategoryRepo(db dbx.DBTX) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

func scanCategory(row scanner) (dom.Category, error) {
	var c dom.Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PGCategoryRepo) Create(ctx context.Context, name string) (dom.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING `+categoryColumns, name))
	return c, translate(err)
}

func (r *PGCategoryRepo) GetByID(ctx context.Context, id int64) (dom.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	return c, translate(err)
}

func (r *PGCategoryRepo) List(ctx context.Context) ([]dom.Category, error) {
	return r.query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
}

// ListOrdered sorts by a whitelisted column; order.SQL never carries user input.
func (r *PGCategoryRepo) ListOrdered(ctx context.Context, order dom.Order) ([]dom.Category, error) {
	return r.query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY `+order.SQL())
}

func (r *PGCategoryRepo) Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Category, error) {
	return r.query(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE name ILIKE $1
		ORDER BY name ASC, id ASC`, likePattern(mode, term))
}

func (r *PGCategoryRepo) Rename(ctx context.Context, id int64, name string) (dom.Category, error) {
	query := `
		UPDATE categories SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + categoryColumns
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id, name))
	return c, translate(err)
}

// Delete locks the category row so no child can be attached mid-cascade,
// then removes downloads, products and subcategories leaf first.
func (r *PGCategoryRepo) Delete(ctx context.Context, id int64) (dom.Category, dom.Removed, error) {
	var removed dom.Removed
	var locked int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return dom.Category{}, removed, translate(err)
	}

	steps := []struct {
		query string
		count *int64
	}{
		{`
		DELETE FROM downloads WHERE product_id IN (
			SELECT p.id FROM products p
			JOIN subcategories s ON s.id = p.subcategory_id
			WHERE s.category_id = $1)`, &removed.Downloads},
		{`
		DELETE FROM products WHERE subcategory_id IN (
			SELECT id FROM subcategories WHERE category_id = $1)`, &removed.Products},
		{`DELETE FROM subcategories WHERE category_id = $1`, &removed.Subcategories},
	}
	for _, step := range steps {
		res, err := r.db.ExecContext(ctx, step.query, id)
		if err != nil {
			return dom.Category{}, dom.Removed{}, translate(err)
		}
		if *step.count, err = rowsAffected(res); err != nil {
			return dom.Category{}, dom.Removed{}, err
		}
	}

	c, err := scanCategory(r.db.QueryRowContext(ctx,
		`DELETE FROM categories WHERE id = $1 RETURNING `+categoryColumns, id))
	if err != nil {
		return dom.Category{}, dom.Removed{}, translate(err)
	}
	removed.Categories = 1
	return c, removed, nil
}

func (r *PGCategoryRepo) query(ctx context.Context, query string, args ...any) ([]dom.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var list []dom.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, translate(err)
		}
		list = append(list, c)
	}
	return list, translate(rows.Err())
}
