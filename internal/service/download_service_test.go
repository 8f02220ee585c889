package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "megawarez/internal/domain"
)

func TestDownloadService_Record(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, tok := f.login(t, "alice")
	bob, bobTok := f.login(t, "bob")

	c, err := f.catalog.Categories.Create(ctx, "Games")
	require.NoError(t, err)
	sub, err := f.catalog.Subcategories.Create(ctx, c.ID, "Action")
	require.NoError(t, err)
	p, err := f.catalog.Products.Create(ctx, sub.ID, "Quest")
	require.NoError(t, err)

	_, err = f.downloads.Record(ctx, bobTok, alice.ID, p.ID)
	assert.ErrorIs(t, err, dom.ErrTokenMismatch)

	_, err = f.downloads.Record(ctx, tok, alice.ID, 999)
	assert.ErrorIs(t, err, dom.ErrReferential)

	view, err := f.downloads.Record(ctx, "Bearer "+tok, alice.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quest", view.Product)
	assert.Equal(t, "alice", view.User)
	assert.False(t, view.CreatedAt.IsZero())

	got, err := f.downloads.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view, got)

	all, err := f.downloads.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := f.downloads.ListByUser(ctx, bobTok, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)
}
