package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"megawarez/internal/dbx"
	"megawarez/internal/domain"
	"megawarez/internal/utils"
)

// Store hands out repositories that share one database handle. Inside InTx
// every repository of the tx Store runs in the same transaction.
type Store interface {
	Users() UserRepo
	Sessions() SessionRepo
	Categories() CategoryRepo
	Subcategories() SubcategoryRepo
	Products() ProductRepo
	Downloads() DownloadRepo
	InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// PGStore implements Store with Postgres through database/sql.
type PGStore struct {
	db *sql.DB
	q  dbx.DBTX
}

// NewPGStore returns a new PGStore.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db, q: db}
}

func (s *PGStore) Users() UserRepo                { return NewPGUserRepo(s.q) }
func (s *PGStore) Sessions() SessionRepo          { return NewPGSessionRepo(s.q) }
func (s *PGStore) Categories() CategoryRepo       { return NewPGCategoryRepo(s.q) }
func (s *PGStore) Subcategories() SubcategoryRepo { return NewPGSubcategoryRepo(s.q) }
func (s *PGStore) Products() ProductRepo          { return NewPGProductRepo(s.q) }
func (s *PGStore) Downloads() DownloadRepo        { return NewPGDownloadRepo(s.q) }

// InTx runs fn in a transaction. Nested calls reuse the open transaction.
func (s *PGStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if _, inTx := s.q.(*sql.Tx); inTx {
		return fn(ctx, s)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &PGStore{db: s.db, q: tx})
	})
}

// translate maps driver errors onto domain sentinels; anything else is
// wrapped as a generic db error.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case utils.IsPGUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case utils.IsPGForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrReferential, err)
	}
	return fmt.Errorf("db error: %w", err)
}

// likePattern escapes LIKE wildcards in term and anchors it per mode.
func likePattern(mode domain.MatchMode, term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	switch mode {
	case domain.MatchPrefix:
		return escaped + "%"
	case domain.MatchSuffix:
		return "%" + escaped
	}
	return "%" + escaped + "%"
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
