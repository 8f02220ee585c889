package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"megawarez/internal/auth"
	dom "megawarez/internal/domain"
	"megawarez/internal/logging"
	"megawarez/internal/repo"
)

type fixture struct {
	store     *repo.MemoryStore
	users     *UserService
	catalog   *Catalog
	downloads *DownloadService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := repo.NewMemoryStore()
	sessions := auth.NewSessionStore(store)
	log := logging.Nop()
	return fixture{
		store:     store,
		users:     NewUserService(store, sessions, auth.NewBcryptHasher(4), auth.NewTokenIssuer(), log),
		catalog:   NewCatalog(store, nil, log),
		downloads: NewDownloadService(store, sessions, log),
	}
}

func (f fixture) login(t *testing.T, username string) (dom.User, string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.users.Register(ctx, username, "secret")
	require.NoError(t, err)
	u, sess, err := f.users.Login(ctx, username, "secret")
	require.NoError(t, err)
	return u, sess.Token
}
