package repo

import (
	"context"

	"megawarez/internal/dbx"
	dom "megawarez/internal/domain"
)

// DownloadRepo provides download persistence. Downloads are append-only.
type DownloadRepo interface {
	Create(ctx context.Context, userID, productID int64) (dom.Download, error)
	GetView(ctx context.Context, id int64) (dom.DownloadView, error)
	ListViews(ctx context.Context) ([]dom.DownloadView, error)
	ListViewsByUser(ctx context.Context, userID int64) ([]dom.DownloadView, error)
}

const downloadViewSelect = `
		SELECT d.id, p.name, u.username, d.created_at
		FROM downloads d
		JOIN products p ON p.id = d.product_id
		JOIN users u ON u.id = d.user_id`

// PGDownloadRepo implements DownloadRepo with Postgres.
type PGDownloadRepo struct {
	db dbx.DBTX
}

// NewPGDownloadRepo returns a new PGDownloadRepo.
func NewPGDownloadRepo(db dbx.DBTX) *PGDownloadRepo {
	return &PGDownloadRepo{db: db}
}

func scanDownloadView(row scanner) (dom.DownloadView, error) {
	var v dom.DownloadView
	err := row.Scan(&v.ID, &v.Product, &v.User, &v.CreatedAt)
	return v, err
}

// Create inserts a download. A missing user or product surfaces as
// domain.ErrReferential through the foreign keys.
func (r *PGDownloadRepo) Create(ctx context.Context, userID, productID int64) (dom.Download, error) {
	query := `
		INSERT INTO downloads (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, user_id, product_id, created_at`
	var d dom.Download
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(
		&d.ID, &d.UserID, &d.ProductID, &d.CreatedAt,
	)
	return d, translate(err)
}

func (r *PGDownloadRepo) GetView(ctx context.Context, id int64) (dom.DownloadView, error) {
	v, err := scanDownloadView(r.db.QueryRowContext(ctx, downloadViewSelect+`
		WHERE d.id = $1`, id))
	return v, translate(err)
}

func (r *PGDownloadRepo) ListViews(ctx context.Context) ([]dom.DownloadView, error) {
	return r.query(ctx, downloadViewSelect+`
		ORDER BY d.id`)
}

func (r *PGDownloadRepo) ListViewsByUser(ctx context.Context, userID int64) ([]dom.DownloadView, error) {
	return r.query(ctx, downloadViewSelect+`
		WHERE d.user_id = $1
		ORDER BY d.id`, userID)
}

func (r *PGDownloadRepo) query(ctx context.Context, query string, args ...any) ([]dom.DownloadView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var list []dom.DownloadView
	for rows.Next() {
		v, err := scanDownloadView(rows)
		if err != nil {
			return nil, translate(err)
		}
		list = append(list, v)
	}
	return list, translate(rows.Err())
}
