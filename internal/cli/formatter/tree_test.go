package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/alexanderramin/roastery/internal/flavorwheel"
)

func wheelFixture() *flavorwheel.Node {
	fruity, berry, nutty := "c1", "c2", "c3"
	red := "#DA1D23"
	cats := []domain.FlavorCategory{
		{ID: fruity, Name: "Fruity", Level: 1, ColorHex: &red},
		{ID: berry, Name: "Berry", Level: 2, ParentID: &fruity},
		{ID: nutty, Name: "Nutty", Level: 1},
	}
	notes := []domain.FlavorNote{
		{ID: "n1", Name: "Raspberry", CategoryID: &berry},
		{ID: "n2", Name: "Almond", CategoryID: &nutty},
	}
	return flavorwheel.Build(cats, notes)
}

func TestRenderWheel_Shape(t *testing.T) {
	root := flavorwheel.Annotate(wheelFixture(), flavorwheel.Highlight{}, flavorwheel.Options{})
	got := strings.Split(strings.TrimRight(stripANSI(RenderWheel(root, false)), "\n"), "\n")

	require.Len(t, got, 5)
	assert.True(t, strings.HasPrefix(got[0], "├─ ██ Fruity"), got[0])
	assert.True(t, strings.HasSuffix(got[0], "[ 1 ]"), got[0])
	assert.True(t, strings.HasPrefix(got[1], "│  └─ ██ Berry"), got[1])
	assert.True(t, strings.HasPrefix(got[2], "│     └─ ██ Raspberry"), got[2])
	assert.True(t, strings.HasPrefix(got[3], "└─ ██ Nutty"), got[3])
	assert.Equal(t, "   └─ ██ Almond", got[4])
}

func TestRenderWheel_Empty(t *testing.T) {
	assert.Equal(t, "(empty flavor wheel)\n", stripANSI(RenderWheel(&flavorwheel.Node{}, false)))
	assert.Equal(t, "(empty flavor wheel)\n", stripANSI(RenderWheel(nil, true)))
}

func TestLeafCount(t *testing.T) {
	root := wheelFixture()
	assert.Equal(t, 2, leafCount(root))
	assert.Equal(t, 1, leafCount(root.Children[0]))
}
