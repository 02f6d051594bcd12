package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/roastery/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlavorRepo_ListCategories_OrderedByLevelThenName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFlavorRepo(db)
	ctx := context.Background()

	fruity := testutil.NewTestCategory("Fruity", 1)
	floral := testutil.NewTestCategory("Floral", 1)
	berry := testutil.NewTestCategory("Berry", 2, testutil.WithParent(fruity.ID))
	citrus := testutil.NewTestCategory("Citrus Fruit", 2, testutil.WithParent(fruity.ID), testutil.WithCategoryColor("#FFA500"))
	require.NoError(t, repo.CreateCategory(ctx, berry))
	require.NoError(t, repo.CreateCategory(ctx, fruity))
	require.NoError(t, repo.CreateCategory(ctx, citrus))
	require.NoError(t, repo.CreateCategory(ctx, floral))

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 4)
	var names []string
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Floral", "Fruity", "Berry", "Citrus Fruit"}, names)
	assert.True(t, cats[0].IsRoot())
	require.NotNil(t, cats[3].ColorHex)
	assert.Equal(t, "#FFA500", *cats[3].ColorHex)

	n, err := repo.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestFlavorRepo_CategoryLevelOutOfRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFlavorRepo(db)

	err := repo.CreateCategory(context.Background(), testutil.NewTestCategory("Too deep", 4))
	assert.Error(t, err)
}

func TestFlavorRepo_OrphanParentAllowed(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFlavorRepo(db)
	ctx := context.Background()

	orphan := testutil.NewTestCategory("Lost", 2, testutil.WithParent("missing-parent"))
	require.NoError(t, repo.CreateCategory(ctx, orphan))

	got, err := repo.GetCategory(ctx, orphan.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, "missing-parent", *got.ParentID)
}

func TestFlavorRepo_DeleteCategory_DetachesNotes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFlavorRepo(db)
	ctx := context.Background()

	cat := testutil.NewTestCategory("Nutty", 1)
	require.NoError(t, repo.CreateCategory(ctx, cat))
	note := testutil.NewTestNote("Hazelnut", testutil.WithCategory(cat.ID))
	require.NoError(t, repo.CreateNote(ctx, note))

	require.NoError(t, repo.DeleteCategory(ctx, cat.ID))

	got, err := repo.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestFlavorRepo_NoteCRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFlavorRepo(db)
	ctx := context.Background()

	note := testutil.NewTestNote("Jasmine", testutil.WithNoteColor("#fff"))
	require.NoError(t, repo.CreateNote(ctx, note))

	desc := "white flowers"
	note.Description = &desc
	require.NoError(t, repo.UpdateNote(ctx, note))

	notes, err := repo.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "white flowers", *notes[0].Description)

	require.NoError(t, repo.DeleteNote(ctx, note.ID))
	_, err = repo.GetNote(ctx, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFlavorRepo_DeleteTaxonomy(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFlavorRepo(db)
	ctx := context.Background()

	cat := testutil.NewTestCategory("Sweet", 1)
	require.NoError(t, repo.CreateCategory(ctx, cat))
	require.NoError(t, repo.CreateNote(ctx, testutil.NewTestNote("Honey", testutil.WithCategory(cat.ID))))

	require.NoError(t, repo.DeleteTaxonomy(ctx))

	n, err := repo.CountCategories(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	notes, err := repo.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
