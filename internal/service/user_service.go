package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"megawarez/internal/auth"
	dom "megawarez/internal/domain"
	"megawarez/internal/logging"
	"megawarez/internal/repo"
)

var (
	ErrUsernameTaken      = fmt.Errorf("%w: username already registered", dom.ErrConflict)
	ErrUserNotRegistered  = errors.New("user is not registered")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", dom.ErrUnauthorized)
)

// UserService handles accounts and their sessions.
type UserService struct {
	store    repo.Store
	sessions *auth.SessionStore
	hasher   auth.PasswordHasher
	tokens   *auth.TokenIssuer
	log      logging.Logger
}

// NewUserService returns a new UserService.
func NewUserService(store repo.Store, sessions *auth.SessionStore, hasher auth.PasswordHasher, tokens *auth.TokenIssuer, log logging.Logger) *UserService {
	return &UserService{store: store, sessions: sessions, hasher: hasher, tokens: tokens, log: log}
}

func cleanCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password required", dom.ErrValidation)
	}
	return username, nil
}

// Register creates a user with a hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (dom.User, error) {
	username, err := cleanCredentials(username, password)
	if err != nil {
		return dom.User{}, err
	}
	if _, err := s.store.Users().GetByUsername(ctx, username); err == nil {
		return dom.User{}, ErrUsernameTaken
	} else if !errors.Is(err, dom.ErrNotFound) {
		return dom.User{}, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.store.Users().Create(ctx, username, hash)
	if errors.Is(err, dom.ErrConflict) {
		return dom.User{}, ErrUsernameTaken
	}
	if err != nil {
		return dom.User{}, err
	}
	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the credentials and opens a new session.
func (s *UserService) Login(ctx context.Context, username, password string) (dom.User, dom.Session, error) {
	username, err := cleanCredentials(username, password)
	if err != nil {
		return dom.User{}, dom.Session{}, err
	}
	u, err := s.store.Users().GetByUsername(ctx, username)
	if errors.Is(err, dom.ErrNotFound) {
		return dom.User{}, dom.Session{}, ErrUserNotRegistered
	}
	if err != nil {
		return dom.User{}, dom.Session{}, err
	}
	if !s.hasher.Compare(u.PasswordHash, password) {
		return dom.User{}, dom.Session{}, ErrInvalidCredentials
	}
	sess, err := s.sessions.Create(ctx, u.ID, s.tokens.Issue(u.Username))
	if err != nil {
		return dom.User{}, dom.Session{}, err
	}
	s.log.Info(ctx, "session opened", "user_id", u.ID, "session_id", sess.ID)
	return u, sess, nil
}

// Logout revokes the session the token belongs to.
func (s *UserService) Logout(ctx context.Context, token string) (dom.Session, error) {
	sess, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return dom.Session{}, err
	}
	return s.sessions.Revoke(ctx, sess.ID)
}

// Token echoes the presented token once it is known to name a live session.
func (s *UserService) Token(ctx context.Context, token string) (string, error) {
	sess, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (s *UserService) List(ctx context.Context) ([]dom.User, error) {
	return orEmpty(s.store.Users().List(ctx))
}

func (s *UserService) Get(ctx context.Context, id int64) (dom.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

func (s *UserService) Rename(ctx context.Context, token string, id int64, username string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return dom.User{}, fmt.Errorf("%w: username must not be blank", dom.ErrValidation)
	}
	if _, err := s.sessions.Authorize(ctx, token, id); err != nil {
		return dom.User{}, err
	}
	u, err := s.store.Users().UpdateUsername(ctx, id, username)
	if errors.Is(err, dom.ErrConflict) {
		return dom.User{}, ErrUsernameTaken
	}
	return u, err
}

func (s *UserService) ChangePassword(ctx context.Context, token string, id int64, password string) (dom.User, error) {
	if password == "" {
		return dom.User{}, fmt.Errorf("%w: password must not be empty", dom.ErrValidation)
	}
	if _, err := s.sessions.Authorize(ctx, token, id); err != nil {
		return dom.User{}, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return dom.User{}, err
	}
	return s.store.Users().UpdatePassword(ctx, id, hash)
}

// Delete answers NotFound for an absent user before checking the token, then
// removes the user with its sessions and downloads.
func (s *UserService) Delete(ctx context.Context, token string, id int64) (dom.User, dom.Removed, error) {
	if _, err := s.store.Users().GetByID(ctx, id); err != nil {
		return dom.User{}, dom.Removed{}, err
	}
	if _, err := s.sessions.Authorize(ctx, token, id); err != nil {
		return dom.User{}, dom.Removed{}, err
	}
	var (
		u       dom.User
		removed dom.Removed
	)
	err := s.store.InTx(ctx, func(ctx context.Context, tx repo.Store) error {
		var err error
		u, removed, err = tx.Users().Delete(ctx, id)
		return err
	})
	if err != nil {
		return dom.User{}, dom.Removed{}, err
	}
	s.log.Info(ctx, "user deleted", "user_id", id, "rows_removed", removed.Total())
	return u, removed, nil
}

// Sessions lists the user's sessions for a caller holding one of them.
func (s *UserService) Sessions(ctx context.Context, token string, id int64) ([]dom.Session, error) {
	if _, err := s.sessions.Authorize(ctx, token, id); err != nil {
		return nil, err
	}
	return orEmpty(s.sessions.FindByUser(ctx, id))
}

// RevokeSession closes sessionID. The caller must hold a session of the same user.
func (s *UserService) RevokeSession(ctx context.Context, token string, sessionID int64) (dom.Session, error) {
	target, err := s.store.Sessions().GetByID(ctx, sessionID)
	if err != nil {
		return dom.Session{}, err
	}
	if _, err := s.sessions.Authorize(ctx, token, target.UserID); err != nil {
		return dom.Session{}, err
	}
	return s.sessions.Revoke(ctx, sessionID)
}
