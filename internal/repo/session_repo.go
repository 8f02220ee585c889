package repo

import (
	"context"

	"megawarez/internal/dbx"
	dom "megawarez/internal/domain"
)

// SessionRepo provides session persistence. Tokens are unique across all users.
type SessionRepo interface {
	Create(ctx context.Context, userID int64, token string) (dom.Session, error)
	GetByID(ctx context.Context, id int64) (dom.Session, error)
	GetByToken(ctx context.Context, token string) (dom.Session, error)
	ListByUser(ctx context.Context, userID int64) ([]dom.Session, error)
	Delete(ctx context.Context, id int64) (dom.Session, error)
}

const sessionColumns = `id, user_id, token, created_at`

// PGSessionRepo implements SessionRepo with Postgres.
type PGSessionRepo struct {
	db dbx.DBTX
}

// NewPGSessionRepo returns a new PGSessionRepo.
func NewPGSessionRepo(db dbx.DBTX) *PGSessionRepo {
	return &PGSessionRepo{db: db}
}

func scanSession(row scanner) (dom.Session, error) {
	var s dom.Session
	err := row.Scan(&s.ID, &s.UserID, &s.Token, &s.CreatedAt)
	return s, err
}

func (r *PGSessionRepo) Create(ctx context.Context, userID int64, token string) (dom.Session, error) {
	query := `
		INSERT INTO sessions (user_id, token)
		VALUES ($1, $2)
		RETURNING ` + sessionColumns
	s, err := scanSession(r.db.QueryRowContext(ctx, query, userID, token))
	return s, translate(err)
}

func (r *PGSessionRepo) GetByID(ctx context.Context, id int64) (dom.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
	return s, translate(err)
}

func (r *PGSessionRepo) GetByToken(ctx context.Context, token string) (dom.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE token = $1`, token))
	return s, translate(err)
}

func (r *PGSessionRepo) ListByUser(ctx context.Context, userID int64) ([]dom.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var list []dom.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, translate(err)
		}
		list = append(list, s)
	}
	return list, translate(rows.Err())
}

func (r *PGSessionRepo) Delete(ctx context.Context, id int64) (dom.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx,
		`DELETE FROM sessions WHERE id = $1 RETURNING `+sessionColumns, id))
	return s, translate(err)
}
