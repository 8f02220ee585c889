package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	dom "megawarez/internal/domain"
	"megawarez/internal/repo"
	"megawarez/internal/utils"
)

// SessionStore maps opaque tokens to users. Nothing is cached and sessions
// never expire; every check goes to storage.
type SessionStore struct {
	store repo.Store
}

// NewSessionStore returns a new session store.
func NewSessionStore(store repo.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Create stores token for userID. The owner is re-read in the same
// transaction so a concurrently deleted user yields ErrNotFound.
func (s *SessionStore) Create(ctx context.Context, userID int64, token string) (dom.Session, error) {
	var sess dom.Session
	err := s.store.InTx(ctx, func(ctx context.Context, tx repo.Store) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return err
		}
		var err error
		sess, err = tx.Sessions().Create(ctx, userID, token)
		return err
	})
	return sess, err
}

func (s *SessionStore) FindByUser(ctx context.Context, userID int64) ([]dom.Session, error) {
	return s.store.Sessions().ListByUser(ctx, userID)
}

// Authorize checks that token belongs to one of userID's sessions. The
// header value may carry a "Bearer " prefix.
func (s *SessionStore) Authorize(ctx context.Context, token string, userID int64) (dom.Session, error) {
	token = utils.BearerToken(token)
	sessions, err := s.store.Sessions().ListByUser(ctx, userID)
	if err != nil {
		return dom.Session{}, err
	}
	if len(sessions) == 0 {
		return dom.Session{}, dom.ErrNoActiveToken
	}
	for _, sess := range sessions {
		if subtle.ConstantTimeCompare([]byte(sess.Token), []byte(token)) == 1 {
			return sess, nil
		}
	}
	return dom.Session{}, dom.ErrTokenMismatch
}

// Lookup resolves token to its session whoever owns it.
func (s *SessionStore) Lookup(ctx context.Context, token string) (dom.Session, error) {
	token = utils.BearerToken(token)
	if token == "" {
		return dom.Session{}, fmt.Errorf("%w: missing token", dom.ErrUnauthorized)
	}
	sess, err := s.store.Sessions().GetByToken(ctx, token)
	if errors.Is(err, dom.ErrNotFound) {
		return dom.Session{}, fmt.Errorf("%w: unknown token", dom.ErrUnauthorized)
	}
	return sess, err
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID int64) (dom.Session, error) {
	return s.store.Sessions().Delete(ctx, sessionID)
}
