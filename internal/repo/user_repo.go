package repo

import (
	"context"

	"megawarez/internal/dbx"
	dom "megawarez/internal/domain"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, username, passwordHash string) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	List(ctx context.Context) ([]dom.User, error)
	UpdateUsername(ctx context.Context, id int64, username string) (dom.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (dom.User, error)
	// Delete removes the user with its sessions and downloads. Run it inside
	// Store.InTx so the three deletes commit together.
	Delete(ctx context.Context, id int64) (dom.User, dom.Removed, error)
}

const userColumns = `id, username, password_hash, created_at, updated_at`

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db dbx.DBTX
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db dbx.DBTX) *PGUserRepo {
	return &PGUserRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (dom.User, error) {
	var u dom.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a new user and returns it.
func (r *PGUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, username, passwordHash))
	return u, translate(err)
}

// GetByID returns the user by id.
func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, translate(err)
}

// GetByUsername returns the user by username.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	return u, translate(err)
}

// List returns every user in insertion order.
func (r *PGUserRepo) List(ctx context.Context) ([]dom.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translate(err)
		}
		list = append(list, u)
	}
	return list, translate(rows.Err())
}

// UpdateUsername renames the user and bumps updated_at.
func (r *PGUserRepo) UpdateUsername(ctx context.Context, id int64, username string) (dom.User, error) {
	query := `
		UPDATE users SET username = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, username))
	return u, translate(err)
}

// UpdatePassword replaces the password hash and bumps updated_at.
func (r *PGUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) (dom.User, error) {
	query := `
		UPDATE users SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, passwordHash))
	return u, translate(err)
}

// Delete removes downloads and sessions before the user row itself. The row
// is locked first so no session can be opened for it mid-delete.
func (r *PGUserRepo) Delete(ctx context.Context, id int64) (dom.User, dom.Removed, error) {
	var removed dom.Removed
	var locked int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return dom.User{}, removed, translate(err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM downloads WHERE user_id = $1`, id)
	if err != nil {
		return dom.User{}, removed, translate(err)
	}
	if removed.Downloads, err = rowsAffected(res); err != nil {
		return dom.User{}, removed, err
	}

	res, err = r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, id)
	if err != nil {
		return dom.User{}, removed, translate(err)
	}
	if removed.Sessions, err = rowsAffected(res); err != nil {
		return dom.User{}, removed, err
	}

	u, err := scanUser(r.db.QueryRowContext(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id))
	if err != nil {
		return dom.User{}, dom.Removed{}, translate(err)
	}
	removed.Users = 1
	return u, removed, nil
}
