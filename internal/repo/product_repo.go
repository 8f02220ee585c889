package repo

import (
	"context"

	"megawarez/internal/dbx"
	dom "megawarez/internal/domain"
)

// ProductRepo provides product persistence.
type ProductRepo interface {
	Create(ctx context.Context, subcategoryID int64, name string) (dom.Product, error)
	GetByID(ctx context.Context, id int64) (dom.Product, error)
	List(ctx context.Context) ([]dom.Product, error)
	ListBySubcategory(ctx context.Context, subcategoryID int64) ([]dom.Product, error)
	ListOrdered(ctx context.Context, order dom.Order) ([]dom.Product, error)
	Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Product, error)
	Rename(ctx context.Context, id int64, name string) (dom.Product, error)
	Move(ctx context.Context, id, subcategoryID int64) (dom.Product, error)
	// Delete removes the product and its downloads. Run it inside Store.InTx.
	Delete(ctx context.Context, id int64) (dom.Product, dom.Removed, error)
}

const productColumns = `id, subcategory_id, name, created_at, updated_at`

// PGProductRepo implements ProductRepo with Postgres.
type PGProductRepo struct {
	db dbx.DBTX
}

// NewPGProductRepo returns a new PGProductRepo.
func NewPGProductRepo(db dbx.DBTX) *PGProductRepo {
	return &PGProductRepo{db: db}
}

func scanProduct(row scanner) (dom.Product, error) {
	var p dom.Product
	err := row.Scan(&p.ID, &p.SubcategoryID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PGProductRepo) Create(ctx context.Context, subcategoryID int64, name string) (dom.Product, error) {
	query := `
		INSERT INTO products (subcategory_id, name)
		VALUES ($1, $2)
		RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, subcategoryID, name))
	return p, translate(err)
}

func (r *PGProductRepo) GetByID(ctx context.Context, id int64) (dom.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	return p, translate(err)
}

func (r *PGProductRepo) List(ctx context.Context) ([]dom.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *PGProductRepo) ListBySubcategory(ctx context.Context, subcategoryID int64) ([]dom.Product, error) {
	return r.query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE subcategory_id = $1 ORDER BY id`, subcategoryID)
}

func (r *PGProductRepo) ListOrdered(ctx context.Context, order dom.Order) ([]dom.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY `+order.SQL())
}

func (r *PGProductRepo) Search(ctx context.Context, mode dom.MatchMode, term string) ([]dom.Product, error) {
	return r.query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE name ILIKE $1
		ORDER BY name ASC, id ASC`, likePattern(mode, term))
}

func (r *PGProductRepo) Rename(ctx context.Context, id int64, name string) (dom.Product, error) {
	query := `
		UPDATE products SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, name))
	return p, translate(err)
}

func (r *PGProductRepo) Move(ctx context.Context, id, subcategoryID int64) (dom.Product, error) {
	query := `
		UPDATE products SET subcategory_id = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, subcategoryID))
	return p, translate(err)
}

func (r *PGProductRepo) Delete(ctx context.Context, id int64) (dom.Product, dom.Removed, error) {
	var removed dom.Removed
	var locked int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT id FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return dom.Product{}, removed, translate(err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM downloads WHERE product_id = $1`, id)
	if err != nil {
		return dom.Product{}, dom.Removed{}, translate(err)
	}
	if removed.Downloads, err = rowsAffected(res); err != nil {
		return dom.Product{}, dom.Removed{}, err
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id))
	if err != nil {
		return dom.Product{}, dom.Removed{}, translate(err)
	}
	removed.Products = 1
	return p, removed, nil
}

func (r *PGProductRepo) query(ctx context.Context, query string, args ...any) ([]dom.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var list []dom.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, translate(err)
		}
		list = append(list, p)
	}
	return list, translate(rows.Err())
}
