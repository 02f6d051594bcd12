package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.90", "12.9", true},
		{"12,90", "12.9", true},
		{" 7 ", "7", true},
		{"12,5 €", "12.5", true},
		{"1,234,5", "1.234", true},
		{"-3", "-3", true},
		{"+4", "4", true},
		{"-.25", "-0.25", true},
		{".5", "0.5", true},
		{"1e2", "100", true},
		{"", "0", false},
		{"abc", "0", false},
		{"€12", "0", false},
		{"1e400", "0", false},
		{"-1e400", "0", false},
		{"1e300", "1" + strings.Repeat("0", 300), true},
	}
	for _, tc := range cases {
		d, ok := ToNumber(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, d.String(), "input %q", tc.in)
		}
	}
}

func TestFirstURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/a.jpg",
		FirstURL(`"https://cdn.example.com/a.jpg" ! alt : Kenia | https://cdn.example.com/b.jpg`))
	assert.Equal(t, "http://x.test/img.png", FirstURL("img: http://x.test/img.png"))
	assert.Equal(t, "https://x.test/its.png", FirstURL("https://x.test/it's.png"))
	assert.Equal(t, "", FirstURL("no image here"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Filter", "Espresso"}, SplitList(" Filter | Espresso |"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" | "))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Äthiopien Guji":       "aethiopien-guji",
		"Süße Röstung":         "suesse-roestung",
		"Café Crème":           "cafe-creme",
		"  --Espresso & Co-- ": "espresso-co",
		"Größe 250g":           "groesse-250g",
		"":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
