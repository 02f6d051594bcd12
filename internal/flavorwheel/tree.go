// Package flavorwheel turns the flat flavor taxonomy into the tree behind
// the sunburst chart, annotates it for a coffee's flavor profile, and
// computes the arc geometry a renderer needs.
package flavorwheel

import (
	"sort"
	"strings"

	"github.com/alexanderramin/roastery/internal/domain"
)

const (
	RootID   = "flavor-wheel-root"
	RootName = "Flavor Wheel"
)

// Node is one wedge of the wheel. Leaves carry Value and no Children;
// internal nodes carry Children and no Value.
type Node struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Level        int      `json:"level"`
	Color        string   `json:"color,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	LabelVisible *bool    `json:"labelVisible,omitempty"`
	Children     []*Node  `json:"children,omitempty"`
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits every node depth-first in child order, root included.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{n, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(it.node, it.depth)
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

// Build assembles the wheel from flat category and note rows.
//
// A category whose parent is missing from categories is placed at the top
// level. Notes without a known category are dropped. Categories that only
// reach each other through a parent cycle never connect to the root and are
// dropped too.
func Build(categories []domain.FlavorCategory, notes []domain.FlavorNote) *Node {
	root := &Node{ID: RootID, Name: RootName, Label: RootName, Level: 0}

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	// "" is the top-level key.
	byParent := make(map[string][]domain.FlavorCategory)
	for _, c := range categories {
		key := ""
		if !c.IsRoot() && known[*c.ParentID] && *c.ParentID != c.ID {
			key = *c.ParentID
		}
		byParent[key] = append(byParent[key], c)
	}
	for _, siblings := range byParent {
		sort.SliceStable(siblings, func(i, j int) bool {
			return lessByName(siblings[i].Name, siblings[i].ID, siblings[j].Name, siblings[j].ID)
		})
	}

	notesByCategory := make(map[string][]domain.FlavorNote)
	for _, n := range notes {
		if n.CategoryID == nil || !known[*n.CategoryID] {
			continue
		}
		notesByCategory[*n.CategoryID] = append(notesByCategory[*n.CategoryID], n)
	}
	for _, list := range notesByCategory {
		sort.SliceStable(list, func(i, j int) bool {
			return lessByName(list[i].Name, list[i].ID, list[j].Name, list[j].ID)
		})
	}

	type frame struct {
		node *Node
		key  string
	}
	visited := make(map[string]bool, len(categories))
	stack := []frame{{root, ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, c := range byParent[f.key] {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true
			child := &Node{
				ID:    c.ID,
				Name:  c.Name,
				Label: c.Name,
				Level: c.Level,
				Color: domain.StrValue(c.ColorHex),
			}
			f.node.Children = append(f.node.Children, child)
			stack = append(stack, frame{child, c.ID})
		}
		if f.node == root {
			continue
		}
		for _, n := range notesByCategory[f.key] {
			f.node.Children = append(f.node.Children, &Node{
				ID:    n.ID,
				Name:  n.Name,
				Label: n.Name,
				Level: f.node.Level + 1,
				Color: domain.StrValue(n.ColorHex),
				Value: floatPtr(1),
			})
		}
		if len(f.node.Children) == 0 {
			f.node.Value = floatPtr(1)
		}
	}
	return root
}

func lessByName(aName, aID, bName, bID string) bool {
	al, bl := strings.ToLower(aName), strings.ToLower(bName)
	if al != bl {
		return al < bl
	}
	return aID < bID
}
