package repo

import (
	"context"

	"megawarez/internal/dbx"
	dom "megawarez/internal/domain"
)

// SubcategoryRepo provides subcategory persistence.
type SubcategoryRepo interface {
	Create(ctx context.Context, categoryID int64, name string) (dom.Subcategory, error)
	GetByID(ctx context.Context, id int64) (dom.Subcategory, error)
	List(ctx context.Context) ([]dom.Subcategory, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]dom.Subcategory, error)
	ListOrdered(ctx context.Context, order dom.Order) ([]dom.Subcategory, error)
	Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Subcategory, error)
	Rename(ctx context.Context, id int64, name string) (dom.Subcategory, error)
	// Delete removes the subcategory, its products and their downloads. Run
	// it inside Store.InTx.
	Delete(ctx context.Context, id int64) (dom.Subcategory, dom.Removed, error)
}

const subcategoryColumns = `id, category_id, name, created_at, updated_at`

// PGSubcategoryRepo implements SubcategoryRepo with Postgres.
type PGSubcategoryRepo struct {
	db dbx.DBTX
}

// NewPGSubcategoryRepo returns a new PGSubcategoryRepo.
func NewPGSubcategoryRepo(db dbx.DBTX) *PGSubcategoryRepo {
	return &PGSubcategoryRepo{db: db}
}

func scanSubcategory(row scanner) (dom.Subcategory, error) {
	var s dom.Subcategory
	err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *PGSubcategoryRepo) Create(ctx context.Context, categoryID int64, name string) (dom.Subcategory, error) {
	query := `
		INSERT INTO subcategories (category_id, name)
		VALUES ($1, $2)
		RETURNING ` + subcategoryColumns
	s, err := scanSubcategory(r.db.QueryRowContext(ctx, query, categoryID, name))
	return s, translate(err)
}

func (r *PGSubcategoryRepo) GetByID(ctx context.Context, id int64) (dom.Subcategory, error) {
	s, err := scanSubcategory(r.db.QueryRowContext(ctx,
		`SELECT `+subcategoryColumns+` FROM subcategories WHERE id = $1`, id))
	return s, translate(err)
}

func (r *PGSubcategoryRepo) List(ctx context.Context) ([]dom.Subcategory, error) {
	return r.query(ctx, `SELECT `+subcategoryColumns+` FROM subcategories ORDER BY id`)
}

func (r *PGSubcategoryRepo) ListByCategory(ctx context.Context, categoryID int64) ([]dom.Subcategory, error) {
	return r.query(ctx, `
		SELECT `+subcategoryColumns+` FROM subcategories
		WHERE category_id = $1 ORDER BY id`, categoryID)
}

func (r *PGSubcategoryRepo) ListOrdered(ctx context.Context, order dom.Order) ([]dom.Subcategory, error) {
	return r.query(ctx, `SELECT `+subcategoryColumns+` FROM subcategories ORDER BY `+order.SQL())
}

func (r *PGSubcategoryRepo) Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Subcategory, error) {
	return r.query(ctx, `
		SELECT `+subcategoryColumns+` FROM subcategories
		WHERE name ILIKE $1
		ORDER BY name ASC, id ASC`, likePattern(mode, term))
}

func (r *PGSubcategoryRepo) Rename(ctx context.Context, id int64, name string) (dom.Subcategory, error) {
	query := `
		UPDATE subcategories SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + subcategoryColumns
	s, err := scanSubcategory(r.db.QueryRowContext(ctx, query, id, name))
	return s, translate(err)
}

func (r *PGSubcategoryRepo) Delete(ctx context.Context, id int64) (dom.Subcategory, dom.Removed, error) {
	var removed dom.Removed
	var locked int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT id FROM subcategories WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return dom.Subcategory{}, removed, translate(err)
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM downloads WHERE product_id IN (
			SELECT id FROM products WHERE subcategory_id = $1)`, id)
	if err != nil {
		return dom.Subcategory{}, dom.Removed{}, translate(err)
	}
	if removed.Downloads, err = rowsAffected(res); err != nil {
		return dom.Subcategory{}, dom.Removed{}, err
	}

	res, err = r.db.ExecContext(ctx, `DELETE FROM products WHERE subcategory_id = $1`, id)
	if err != nil {
		return dom.Subcategory{}, dom.Removed{}, translate(err)
	}
	if removed.Products, err = rowsAffected(res); err != nil {
		return dom.Subcategory{}, dom.Removed{}, err
	}

	s, err := scanSubcategory(r.db.QueryRowContext(ctx,
		`DELETE FROM subcategories WHERE id = $1 RETURNING `+subcategoryColumns, id))
	if err != nil {
		return dom.Subcategory{}, dom.Removed{}, translate(err)
	}
	removed.Subcategories = 1
	return s, removed, nil
}

func (r *PGSubcategoryRepo) query(ctx context.Context, query string, args ...any) ([]dom.Subcategory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var list []dom.Subcategory
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, translate(err)
		}
		list = append(list, s)
	}
	return list, translate(rows.Err())
}
