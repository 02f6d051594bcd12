package flavorwheel

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(s string) *string { return &s }

func category(id, name string, level int, parent string) domain.FlavorCategory {
	c := domain.FlavorCategory{ID: id, Name: name, Level: level}
	if parent != "" {
		c.ParentID = sp(parent)
	}
	return c
}

func note(id, name, categoryID string) domain.FlavorNote {
	n := domain.FlavorNote{ID: id, Name: name}
	if categoryID != "" {
		n.CategoryID = sp(categoryID)
	}
	return n
}

// sampleTaxonomy is a small slice of the SCA wheel.
func sampleTaxonomy() ([]domain.FlavorCategory, []domain.FlavorNote) {
	fruity := category("fruity", "Fruity", 1, "")
	fruity.ColorHex = sp("#FF6347")
	cats := []domain.FlavorCategory{
		category("sweet", "Sweet", 1, ""),
		fruity,
		category("berry", "Berry", 2, "fruity"),
		category("citrus", "Citrus Fruit", 2, "fruity"),
		category("floral", "Floral", 1, ""),
		category("honey", "Honey", 2, "sweet"),
	}
	notes := []domain.FlavorNote{
		note("n-rasp", "Raspberry", "berry"),
		note("n-blue", "Blueberry", "berry"),
		note("n-lemon", "Lemon", "citrus"),
		note("n-jasmine", "Jasmine", "floral"),
		note("n-stray", "Stray", ""),
		note("n-ghost", "Ghost", "missing"),
	}
	return cats, notes
}

func childNames(n *Node) []string {
	var names []string
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	return names
}

func TestBuild_RootAndOrdering(t *testing.T) {
	cats, notes := sampleTaxonomy()
	root := Build(cats, notes)

	assert.Equal(t, RootID, root.ID)
	assert.Equal(t, RootName, root.Name)
	assert.Equal(t, RootName, root.Label)
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, []string{"Floral", "Fruity", "Sweet"}, childNames(root))

	fruity := root.Children[1]
	assert.Equal(t, "#FF6347", fruity.Color)
	assert.Equal(t, []string{"Berry", "Citrus Fruit"}, childNames(fruity))

	berry := fruity.Children[0]
	assert.Equal(t, []string{"Blueberry", "Raspberry"}, childNames(berry))
	assert.Equal(t, 3, berry.Children[0].Level)
}

func TestBuild_SubcategoriesBeforeNotes(t *testing.T) {
	cats := []domain.FlavorCategory{
		category("a", "Other", 1, ""),
		category("b", "Papery", 2, "a"),
	}
	notes := []domain.FlavorNote{note("n1", "Alpha", "a")}
	root := Build(cats, notes)

	require.Len(t, root.Children, 1)
	other := root.Children[0]
	assert.Equal(t, []string{"Papery", "Alpha"}, childNames(other))
	assert.Equal(t, 2, other.Children[1].Level, "note sits one level below its category")
}

func TestBuild_ShapeInvariant(t *testing.T) {
	cats, notes := sampleTaxonomy()
	root := Build(cats, notes)

	root.Walk(func(n *Node, depth int) {
		if depth == 0 {
			return
		}
		if n.IsLeaf() {
			assert.Nil(t, n.Children, n.Name)
			require.NotNil(t, n.Value, n.Name)
			assert.Equal(t, 1.0, *n.Value)
		} else {
			assert.Nil(t, n.Value, n.Name)
		}
	})

	// Honey has neither sub-categories nor notes.
	sweet := root.Children[2]
	honey := sweet.Children[0]
	assert.True(t, honey.IsLeaf())
	require.NotNil(t, honey.Value)

	raw, err := json.Marshal(honey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "children")
}

func TestBuild_OrphansBecomeTopLevel(t *testing.T) {
	cats := []domain.FlavorCategory{
		category("a", "Roasted", 1, ""),
		category("b", "Burnt", 2, "does-not-exist"),
	}
	var root *Node
	require.NotPanics(t, func() { root = Build(cats, nil) })
	assert.Equal(t, []string{"Burnt", "Roasted"}, childNames(root))
}

func TestBuild_NotesWithoutKnownCategoryAreDropped(t *testing.T) {
	cats, notes := sampleTaxonomy()
	root := Build(cats, notes)

	root.Walk(func(n *Node, _ int) {
		assert.NotEqual(t, "Stray", n.Name)
		assert.NotEqual(t, "Ghost", n.Name)
	})
}

func TestBuild_Empty(t *testing.T) {
	root := Build(nil, nil)
	assert.Equal(t, RootID, root.ID)
	assert.Empty(t, root.Children)
}

func TestBuild_CyclesTerminate(t *testing.T) {
	cats := []domain.FlavorCategory{
		category("top", "Spices", 1, ""),
		category("x", "Pungent", 2, "y"),
		category("y", "Pepper", 2, "x"),
		category("self", "Anise", 2, "self"),
	}
	root := Build(cats, nil)

	seen := map[string]int{}
	root.Walk(func(n *Node, _ int) { seen[n.ID]++ })
	for id, count := range seen {
		assert.Equal(t, 1, count, id)
	}
	assert.Equal(t, []string{"Anise", "Spices"}, childNames(root))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	cats, notes := sampleTaxonomy()
	firstName := cats[0].Name
	Build(cats, notes)
	assert.Equal(t, firstName, cats[0].Name)
}
