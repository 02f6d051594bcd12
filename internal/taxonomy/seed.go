// Package taxonomy loads flavor taxonomies from TOML seed files.
package taxonomy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/google/uuid"
)

// MaxDepth is the deepest category level the catalog stores.
const MaxDepth = 3

//go:embed sca.toml
var scaWheel []byte

// Seed is a nested taxonomy:
//
//	[[category]]
//	name = "Fruity"
//	color = "#FF6347"
//
//	  [[category.category]]
//	  name = "Berry"
//	  notes = ["Blackberry", "Raspberry"]
type Seed struct {
	Categories []Category `toml:"category"`
}

type Category struct {
	Name     string     `toml:"name"`
	Color    string     `toml:"color"`
	Notes    []string   `toml:"notes"`
	Children []Category `toml:"category"`
}

// DefaultSeed is the built-in SCA coffee taster's wheel.
func DefaultSeed() *Seed {
	s, err := ParseSeed(scaWheel)
	if err != nil {
		panic(fmt.Sprintf("taxonomy: built-in seed is invalid: %v", err))
	}
	return s
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("decoding seed: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names and nesting depth.
func (s *Seed) Validate() error {
	if len(s.Categories) == 0 {
		return errors.New("seed has no categories")
	}
	var errs []error
	var walk func(cats []Category, depth int, path string)
	walk = func(cats []Category, depth int, path string) {
		for i, c := range cats {
			name := strings.TrimSpace(c.Name)
			where := fmt.Sprintf("%s[%d]", path, i)
			if name == "" {
				errs = append(errs, fmt.Errorf("%s: name is required", where))
			} else {
				where = path + "/" + name
			}
			if depth > MaxDepth {
				errs = append(errs, fmt.Errorf("%s: nested deeper than %d levels", where, MaxDepth))
				continue
			}
			for _, n := range c.Notes {
				if strings.TrimSpace(n) == "" {
					errs = append(errs, fmt.Errorf("%s: blank note name", where))
				}
			}
			walk(c.Children, depth+1, where)
		}
	}
	walk(s.Categories, 1, "")
	return errors.Join(errs...)
}

// Flatten assigns fresh ids and returns the rows to store. Levels follow
// nesting depth.
func (s *Seed) Flatten(now time.Time) ([]domain.FlavorCategory, []domain.FlavorNote) {
	var (
		cats  []domain.FlavorCategory
		notes []domain.FlavorNote
	)
	type frame struct {
		cat      Category
		level    int
		parentID *string
	}
	stack := make([]frame, 0, len(s.Categories))
	for i := len(s.Categories) - 1; i >= 0; i-- {
		stack = append(stack, frame{cat: s.Categories[i], level: 1})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := uuid.New().String()
		cats = append(cats, domain.FlavorCategory{
			ID:        id,
			Name:      strings.TrimSpace(f.cat.Name),
			Level:     f.level,
			ParentID:  f.parentID,
			ColorHex:  domain.StrOrNil(f.cat.Color),
			CreatedAt: now,
			UpdatedAt: now,
		})
		for _, n := range f.cat.Notes {
			categoryID := id
			notes = append(notes, domain.FlavorNote{
				ID:         uuid.New().String(),
				Name:       strings.TrimSpace(n),
				CategoryID: &categoryID,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
		for i := len(f.cat.Children) - 1; i >= 0; i-- {
			parent := id
			stack = append(stack, frame{cat: f.cat.Children[i], level: f.level + 1, parentID: &parent})
		}
	}
	return cats, notes
}
