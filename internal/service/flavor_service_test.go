package service

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/roastery/internal/flavorwheel"
	"github.com/alexanderramin/roastery/internal/repository"
	"github.com/alexanderramin/roastery/internal/taxonomy"
	"github.com/alexanderramin/roastery/internal/testutil"
)

type flavorFixture struct {
	svc     FlavorService
	coffees *repository.SQLiteCoffeeRepo
}

func newFlavorFixture(t *testing.T) flavorFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	log, _ := logtest.NewNullLogger()
	coffees := repository.NewSQLiteCoffeeRepo(database)
	return flavorFixture{
		svc: NewFlavorService(
			repository.NewSQLiteFlavorRepo(database),
			coffees,
			testutil.NewTestUoW(database),
			log,
		),
		coffees: coffees,
	}
}

func findNode(root *flavorwheel.Node, name string) *flavorwheel.Node {
	var found *flavorwheel.Node
	root.Walk(func(n *flavorwheel.Node, _ int) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}

func TestFlavorService_CategoryParentRules(t *testing.T) {
	f := newFlavorFixture(t)
	ctx := context.Background()

	fruity, err := f.svc.CreateCategory(ctx, FlavorCategoryInput{Name: "Fruity", Level: 1, ColorHex: ptr("#DA1D23")})
	require.NoError(t, err)

	berry, err := f.svc.CreateCategory(ctx, FlavorCategoryInput{Name: "Berry", Level: 2, ParentID: &fruity.ID})
	require.NoError(t, err)
	assert.Equal(t, fruity.ID, *berry.ParentID)

	tests := []struct {
		name string
		in   FlavorCategoryInput
	}{
		{"level out of range", FlavorCategoryInput{Name: "Deep", Level: 4}},
		{"bad color", FlavorCategoryInput{Name: "Red", Level: 1, ColorHex: ptr("red")}},
		{"unknown parent", FlavorCategoryInput{Name: "X", Level: 2, ParentID: ptr("nope")}},
		{"parent two levels up", FlavorCategoryInput{Name: "X", Level: 3, ParentID: &fruity.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateCategory(ctx, tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err = f.svc.UpdateCategory(ctx, berry.ID, FlavorCategoryInput{Name: "Berry", Level: 2, ParentID: &berry.ID})
	assert.ErrorIs(t, err, ErrValidation)

	// Empty parent id means top level.
	top, err := f.svc.UpdateCategory(ctx, berry.ID, FlavorCategoryInput{Name: "Berry", Level: 1, ParentID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, top.ParentID)
}

func TestFlavorService_NoteCRUD(t *testing.T) {
	f := newFlavorFixture(t)
	ctx := context.Background()

	berry, err := f.svc.CreateCategory(ctx, FlavorCategoryInput{Name: "Berry", Level: 1})
	require.NoError(t, err)

	_, err = f.svc.CreateNote(ctx, FlavorNoteInput{Name: "Himbeere", CategoryID: ptr("nope")})
	assert.ErrorIs(t, err, ErrValidation)

	n, err := f.svc.CreateNote(ctx, FlavorNoteInput{Name: "Himbeere", CategoryID: &berry.ID})
	require.NoError(t, err)

	n, err = f.svc.UpdateNote(ctx, n.ID, FlavorNoteInput{Name: "Brombeere", CategoryID: &berry.ID, Description: ptr("dunkel")})
	require.NoError(t, err)
	assert.Equal(t, "dunkel", *n.Description)

	got, err := f.svc.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brombeere", got.Name)

	require.NoError(t, f.svc.DeleteNote(ctx, n.ID))
	assert.ErrorIs(t, f.svc.DeleteNote(ctx, n.ID), repository.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteCategory(ctx, "nope"), repository.ErrNotFound)
}

func TestFlavorService_WheelHighlightsCoffeeNotes(t *testing.T) {
	f := newFlavorFixture(t)
	ctx := context.Background()

	fruity, err := f.svc.CreateCategory(ctx, FlavorCategoryInput{Name: "Fruity", Level: 1, ColorHex: ptr("#DA1D23")})
	require.NoError(t, err)
	nutty, err := f.svc.CreateCategory(ctx, FlavorCategoryInput{Name: "Nutty", Level: 1})
	require.NoError(t, err)
	cherry, err := f.svc.CreateNote(ctx, FlavorNoteInput{Name: "Cherry", CategoryID: &fruity.ID})
	require.NoError(t, err)
	_, err = f.svc.CreateNote(ctx, FlavorNoteInput{Name: "Almond", CategoryID: &nutty.ID})
	require.NoError(t, err)

	coffee := testutil.NewTestCoffee("Kenia AA")
	require.NoError(t, f.coffees.Create(ctx, coffee))
	require.NoError(t, f.coffees.SetFlavorNotes(ctx, coffee.ID, []string{cherry.ID}))

	res, err := f.svc.Wheel(ctx, WheelRequest{CoffeeSlug: coffee.Slug, Layout: true})
	require.NoError(t, err)

	cherryNode := findNode(res.Tree, "Cherry")
	require.NotNil(t, cherryNode)
	assert.Equal(t, "#DA1D23", cherryNode.Color)
	assert.True(t, *cherryNode.LabelVisible)

	fruityNode := findNode(res.Tree, "Fruity")
	require.NotNil(t, fruityNode)
	assert.True(t, *fruityNode.LabelVisible)

	almond := findNode(res.Tree, "Almond")
	require.NotNil(t, almond)
	assert.False(t, *almond.LabelVisible)
	assert.Less(t, *almond.Value, *cherryNode.Value)

	assert.Len(t, res.Arcs, 4)

	_, err = f.svc.Wheel(ctx, WheelRequest{CoffeeID: "missing"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFlavorService_WheelOverview(t *testing.T) {
	f := newFlavorFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateCategory(ctx, FlavorCategoryInput{Name: "Sweet", Level: 1})
	require.NoError(t, err)

	res, err := f.svc.Wheel(ctx, WheelRequest{AlwaysShowTopLabels: true})
	require.NoError(t, err)
	require.Len(t, res.Tree.Children, 1)
	assert.True(t, *res.Tree.Children[0].LabelVisible)
	assert.Nil(t, res.Arcs)
}

func TestFlavorService_Seed(t *testing.T) {
	f := newFlavorFixture(t)
	ctx := context.Background()
	seed := taxonomy.DefaultSeed()

	res, err := f.svc.Seed(ctx, seed, false)
	require.NoError(t, err)
	assert.Positive(t, res.Categories)
	assert.Positive(t, res.Notes)

	categories, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, res.Categories)

	_, err = f.svc.Seed(ctx, seed, false)
	assert.ErrorIs(t, err, ErrConflict)

	again, err := f.svc.Seed(ctx, seed, true)
	require.NoError(t, err)
	assert.Equal(t, res, again)

	categories, err = f.svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, res.Categories)
}

func TestFlavorService_SeedRejectsInvalid(t *testing.T) {
	f := newFlavorFixture(t)

	_, err := f.svc.Seed(context.Background(), &taxonomy.Seed{}, false)
	assert.ErrorIs(t, err, ErrValidation)
}
