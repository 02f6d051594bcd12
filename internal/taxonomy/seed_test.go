package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallSeed = `
[[category]]
name = "Fruity"
color = "#FF6347"

  [[category.category]]
  name = "Berry"
  notes = ["Blackberry", "Raspberry"]

    [[category.category.category]]
    name = "Wild Berry"
    notes = ["Cloudberry"]

[[category]]
name = "Sweet"
notes = ["Honey"]
`

func TestParseSeed_Flatten(t *testing.T) {
	s, err := ParseSeed([]byte(smallSeed))
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cats, notes := s.Flatten(now)
	require.Len(t, cats, 4)
	require.Len(t, notes, 4)

	byName := map[string]int{}
	for i, c := range cats {
		byName[c.Name] = i
	}
	fruity := cats[byName["Fruity"]]
	berry := cats[byName["Berry"]]
	wild := cats[byName["Wild Berry"]]
	sweet := cats[byName["Sweet"]]

	assert.Equal(t, 1, fruity.Level)
	assert.Nil(t, fruity.ParentID)
	require.NotNil(t, fruity.ColorHex)
	assert.Equal(t, "#FF6347", *fruity.ColorHex)

	assert.Equal(t, 2, berry.Level)
	require.NotNil(t, berry.ParentID)
	assert.Equal(t, fruity.ID, *berry.ParentID)
	assert.Nil(t, berry.ColorHex)

	assert.Equal(t, 3, wild.Level)
	assert.Equal(t, berry.ID, *wild.ParentID)
	assert.Equal(t, 1, sweet.Level)

	for _, n := range notes {
		require.NotNil(t, n.CategoryID)
		assert.Equal(t, now, n.CreatedAt)
	}
	assert.Equal(t, "Cloudberry", notes[2].Name)
	assert.Equal(t, wild.ID, *notes[2].CategoryID)
}

func TestParseSeed_TooDeep(t *testing.T) {
	data := `
[[category]]
name = "a"
  [[category.category]]
  name = "b"
    [[category.category.category]]
    name = "c"
      [[category.category.category.category]]
      name = "d"
`
	_, err := ParseSeed([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/a/b/c/d: nested deeper than 3 levels")
}

func TestParseSeed_MissingName(t *testing.T) {
	_, err := ParseSeed([]byte("[[category]]\ncolor = \"#fff\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestParseSeed_UnknownKey(t *testing.T) {
	_, err := ParseSeed([]byte("[[category]]\nname = \"a\"\ncolour = \"#fff\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestParseSeed_Empty(t *testing.T) {
	_, err := ParseSeed([]byte(""))
	assert.Error(t, err)
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.toml")
	require.NoError(t, os.WriteFile(path, []byte(smallSeed), 0o644))

	s, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Len(t, s.Categories, 2)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefaultSeed(t *testing.T) {
	s := DefaultSeed()
	cats, notes := s.Flatten(time.Now())

	var top []string
	for _, c := range cats {
		if c.Level == 1 {
			top = append(top, c.Name)
		}
	}
	assert.Equal(t, []string{"Floral", "Fruity", "Sour/Fermented", "Green/Vegetative", "Other", "Roasted", "Spices", "Nutty/Cocoa", "Sweet"}, top)
	assert.NotEmpty(t, notes)
}
