package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "megawarez/internal/domain"
)

func seedTree(t *testing.T, s Store, n, m, k int) (dom.Category, dom.User) {
	t.Helper()
	ctx := context.Background()
	u, err := s.Users().Create(ctx, "alice", "hash")
	require.NoError(t, err)
	c, err := s.Categories().Create(ctx, "Games")
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		sub, err := s.Subcategories().Create(ctx, c.ID, "sub")
		require.NoError(t, err)
		for j := 0; j < m; j++ {
			p, err := s.Products().Create(ctx, sub.ID, "product")
			require.NoError(t, err)
			for l := 0; l < k; l++ {
				_, err := s.Downloads().Create(ctx, u.ID, p.ID)
				require.NoError(t, err)
			}
		}
	}
	return c, u
}

func TestMemoryStore_CategoryCascadeCounts(t *testing.T) {
	for _, tc := range []struct{ n, m, k int }{{0, 0, 0}, {1, 1, 1}, {2, 3, 4}, {3, 0, 5}} {
		s := NewMemoryStore()
		c, u := seedTree(t, s, tc.n, tc.m, tc.k)

		var removed dom.Removed
		err := s.InTx(context.Background(), func(ctx context.Context, tx Store) error {
			var err error
			_, removed, err = tx.Categories().Delete(ctx, c.ID)
			return err
		})
		require.NoError(t, err)

		n, m, k := int64(tc.n), int64(tc.m), int64(tc.k)
		assert.Equal(t, 1+n+n*m+n*m*k, removed.Total(), "n=%d m=%d k=%d", n, m, k)

		views, err := s.Downloads().ListViewsByUser(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Empty(t, views)
		subs, err := s.Subcategories().List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, subs)
	}
}

func TestMemoryStore_DeleteScenario(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u, err := s.Users().Create(ctx, "alice", "hash")
	require.NoError(t, err)
	games, err := s.Categories().Create(ctx, "Games")
	require.NoError(t, err)
	action, err := s.Subcategories().Create(ctx, games.ID, "Action")
	require.NoError(t, err)
	quest, err := s.Products().Create(ctx, action.ID, "Quest")
	require.NoError(t, err)
	_, err = s.Downloads().Create(ctx, u.ID, quest.ID)
	require.NoError(t, err)

	_, _, err = s.Categories().Delete(ctx, games.ID)
	require.NoError(t, err)

	_, err = s.Subcategories().GetByID(ctx, action.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	_, err = s.Products().GetByID(ctx, quest.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	views, err := s.Downloads().ListViews(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestMemoryStore_InTxRestoresOnError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c, _ := seedTree(t, s, 1, 2, 1)

	boom := errors.New("boom")
	err := s.InTx(ctx, func(ctx context.Context, tx Store) error {
		if _, _, err := tx.Categories().Delete(ctx, c.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Categories().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Games", got.Name)
	products, err := s.Products().List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestMemoryStore_Constraints(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u, err := s.Users().Create(ctx, "alice", "hash")
	require.NoError(t, err)
	_, err = s.Users().Create(ctx, "alice", "other")
	assert.ErrorIs(t, err, dom.ErrConflict)

	_, err = s.Sessions().Create(ctx, u.ID, "tok")
	require.NoError(t, err)
	_, err = s.Sessions().Create(ctx, u.ID, "tok")
	assert.ErrorIs(t, err, dom.ErrConflict)
	_, err = s.Sessions().Create(ctx, 99, "other")
	assert.ErrorIs(t, err, dom.ErrReferential)

	_, err = s.Subcategories().Create(ctx, 99, "Action")
	assert.ErrorIs(t, err, dom.ErrReferential)
	_, err = s.Products().Create(ctx, 99, "Quest")
	assert.ErrorIs(t, err, dom.ErrReferential)
	_, err = s.Downloads().Create(ctx, u.ID, 99)
	assert.ErrorIs(t, err, dom.ErrReferential)
}

func TestMemoryStore_UserDeleteCascade(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, u := seedTree(t, s, 1, 1, 3)
	_, err := s.Sessions().Create(ctx, u.ID, "t1")
	require.NoError(t, err)

	_, removed, err := s.Users().Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.Removed{Users: 1, Sessions: 1, Downloads: 3}, removed)

	_, err = s.Sessions().GetByToken(ctx, "t1")
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestMemoryStore_RenameStampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	c, err := s.Categories().Create(ctx, "Games")
	require.NoError(t, err)
	assert.Nil(t, c.UpdatedAt)

	c, err = s.Categories().Rename(ctx, c.ID, "Video games")
	require.NoError(t, err)
	require.NotNil(t, c.UpdatedAt)
	assert.Equal(t, fixed, *c.UpdatedAt)
	assert.Equal(t, "Video games", c.Name)

	_, err = s.Categories().Rename(ctx, 42, "x")
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestMemoryStore_SearchAndOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, name := range []string{"Doom", "Quake", "doom eternal", "Heroes"} {
		_, err := s.Categories().Create(ctx, name)
		require.NoError(t, err)
	}

	prefix, err := s.Categories().Search(ctx, dom.MatchPrefix, "DOOM")
	require.NoError(t, err)
	require.Len(t, prefix, 2)
	assert.Equal(t, "Doom", prefix[0].Name)

	suffix, err := s.Categories().Search(ctx, dom.MatchSuffix, "es")
	require.NoError(t, err)
	require.Len(t, suffix, 1)
	assert.Equal(t, "Heroes", suffix[0].Name)

	all, err := s.Categories().Search(ctx, dom.MatchContains, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	ordered, err := s.Categories().ListOrdered(ctx, dom.Order{Column: "name", Desc: true})
	require.NoError(t, err)
	names := make([]string, len(ordered))
	for i, c := range ordered {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"doom eternal", "Quake", "Heroes", "Doom"}, names)
}

func TestMemoryStore_MoveProduct(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c, err := s.Categories().Create(ctx, "Games")
	require.NoError(t, err)
	a, err := s.Subcategories().Create(ctx, c.ID, "Action")
	require.NoError(t, err)
	b, err := s.Subcategories().Create(ctx, c.ID, "Puzzle")
	require.NoError(t, err)
	p, err := s.Products().Create(ctx, a.ID, "Quest")
	require.NoError(t, err)

	p, err = s.Products().Move(ctx, p.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, p.SubcategoryID)
	assert.NotNil(t, p.UpdatedAt)

	_, err = s.Products().Move(ctx, p.ID, 99)
	assert.ErrorIs(t, err, dom.ErrReferential)

	inB, err := s.Products().ListBySubcategory(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, inB, 1)
}
