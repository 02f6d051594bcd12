package csvimport

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)
	urlPattern   = regexp.MustCompile(`https?://\S+`)
	nonSlugRun   = regexp.MustCompile(`[^a-z0-9]+`)

	umlauts = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
)

// ToNumber parses a price or stock cell leniently: the first comma is read
// as a decimal separator and trailing garbage after the leading number is
// ignored ("12,5 €" is 12.5). ok is false when no number leads the cell
// or the number does not fit a float64.
func ToNumber(s string) (d decimal.Decimal, ok bool) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	m := numberPrefix.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}
	m = strings.TrimPrefix(m, "+")
	if i := strings.IndexByte(m, '.'); i == 0 || (i == 1 && m[0] == '-') {
		m = m[:i] + "0" + m[i:]
	}
	d, err := decimal.NewFromString(m)
	if err != nil || math.IsInf(d.InexactFloat64(), 0) {
		return decimal.Zero, false
	}
	return d, true
}

// FirstURL returns the first http(s) URL in s with any quote characters
// removed, or "" when there is none.
func FirstURL(s string) string {
	m := urlPattern.FindString(s)
	if m == "" {
		return ""
	}
	return strings.NewReplacer(`"`, "", `'`, "").Replace(m)
}

// SplitList splits a pipe-delimited taxonomy cell into trimmed, non-empty names.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Slugify lower-cases s, spells out German umlauts and ß, folds any other
// diacritics, and joins the remaining alphanumeric runs with dashes.
func Slugify(s string) string {
	s = cases.Lower(language.German).String(s)
	s = umlauts.Replace(s)

	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
