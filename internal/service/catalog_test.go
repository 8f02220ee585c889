package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "megawarez/internal/domain"
)

func names[T any](list []T, name func(T) string) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = name(v)
	}
	return out
}

func productName(p dom.Product) string { return p.Name }

func TestCatalog_CreateValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.Categories.Create(ctx, "  ")
	assert.ErrorIs(t, err, dom.ErrValidation)

	_, err = f.catalog.Subcategories.Create(ctx, 42, "Action")
	assert.ErrorIs(t, err, dom.ErrReferential)

	_, err = f.catalog.Products.Create(ctx, 42, "Quest")
	assert.ErrorIs(t, err, dom.ErrReferential)

	c, err := f.catalog.Categories.Create(ctx, " Games ")
	require.NoError(t, err)
	assert.Equal(t, "Games", c.Name)
	assert.Nil(t, c.UpdatedAt)
}

func TestCatalog_DeleteCategoryScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, tok := f.login(t, "alice")

	games, err := f.catalog.Categories.Create(ctx, "Games")
	require.NoError(t, err)
	action, err := f.catalog.Subcategories.Create(ctx, games.ID, "Action")
	require.NoError(t, err)
	quest, err := f.catalog.Products.Create(ctx, action.ID, "Quest")
	require.NoError(t, err)
	_, err = f.downloads.Record(ctx, tok, alice.ID, quest.ID)
	require.NoError(t, err)

	_, removed, err := f.catalog.Categories.Delete(ctx, games.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.Removed{Categories: 1, Subcategories: 1, Products: 1, Downloads: 1}, removed)

	_, err = f.catalog.Subcategories.Get(ctx, action.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	_, err = f.catalog.Products.Get(ctx, quest.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	views, err := f.downloads.ListByUser(ctx, tok, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	_, _, err = f.catalog.Categories.Delete(ctx, games.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestCatalog_SearchUnionsModes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.catalog.Categories.Create(ctx, "Games")
	require.NoError(t, err)
	sub, err := f.catalog.Subcategories.Create(ctx, c.ID, "Action")
	require.NoError(t, err)
	for _, name := range []string{"Doom", "Quake", "Doom II", "Hexen", "Ultimate Doom"} {
		_, err := f.catalog.Products.Create(ctx, sub.ID, name)
		require.NoError(t, err)
	}

	hits, err := f.catalog.Products.Search(ctx, "doom")
	require.NoError(t, err)
	assert.Equal(t, []string{"Doom", "Doom II", "Ultimate Doom"}, names(hits, productName))

	all, err := f.catalog.Products.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
	seen := map[int64]bool{}
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}

	none, err := f.catalog.Products.Search(ctx, "%")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCatalog_ListOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Music", "Apps", "Games"} {
		_, err := f.catalog.Categories.Create(ctx, name)
		require.NoError(t, err)
	}

	list, err := f.catalog.Categories.ListOrdered(ctx, "name", "ASC")
	require.NoError(t, err)
	assert.Equal(t, []string{"Apps", "Games", "Music"}, names(list, func(c dom.Category) string { return c.Name }))

	list, err = f.catalog.Categories.ListOrdered(ctx, "createdAt", "desc")
	require.NoError(t, err)
	assert.Equal(t, []string{"Games", "Apps", "Music"}, names(list, func(c dom.Category) string { return c.Name }))

	_, err = f.catalog.Categories.ListOrdered(ctx, "password", "asc")
	assert.ErrorIs(t, err, dom.ErrInvalidSortField)
	_, err = f.catalog.Categories.ListOrdered(ctx, "name", "sideways")
	assert.ErrorIs(t, err, dom.ErrValidation)
}

func TestCatalog_MoveAndListChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.catalog.Categories.Create(ctx, "Games")
	require.NoError(t, err)
	a, err := f.catalog.Subcategories.Create(ctx, c.ID, "Action")
	require.NoError(t, err)
	b, err := f.catalog.Subcategories.Create(ctx, c.ID, "Puzzle")
	require.NoError(t, err)
	p, err := f.catalog.Products.Create(ctx, a.ID, "Tetris")
	require.NoError(t, err)

	p, err = f.catalog.Products.Move(ctx, p.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, p.SubcategoryID)

	inA, err := f.catalog.Products.ListBySubcategory(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, inA)
	inB, err := f.catalog.Products.ListBySubcategory(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, inB, 1)

	subs, err := f.catalog.Subcategories.ListByCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	_, err = f.catalog.Subcategories.ListByCategory(ctx, 999)
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestCatalog_Rename(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.catalog.Categories.Create(ctx, "Games")
	require.NoError(t, err)
	sub, err := f.catalog.Subcategories.Create(ctx, c.ID, "Action")
	require.NoError(t, err)

	sub, err = f.catalog.Subcategories.Rename(ctx, sub.ID, "Adventure")
	require.NoError(t, err)
	assert.Equal(t, "Adventure", sub.Name)
	assert.NotNil(t, sub.UpdatedAt)

	_, err = f.catalog.Subcategories.Rename(ctx, 999, "x")
	assert.ErrorIs(t, err, dom.ErrNotFound)
	_, err = f.catalog.Subcategories.Rename(ctx, sub.ID, " ")
	assert.ErrorIs(t, err, dom.ErrValidation)
}
