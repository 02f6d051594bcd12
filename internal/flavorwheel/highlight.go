package flavorwheel

import "strings"

// Highlight is the flavor profile to emphasise: names match
// case-insensitively, IDs exactly. Blank entries are ignored.
type Highlight struct {
	Names []string `json:"names,omitempty"`
	IDs   []string `json:"ids,omitempty"`
}

// Options selects the rendering variant.
type Options struct {
	// AlwaysShowTopLabels keeps every level-1 label visible, as on the
	// catalog listing page.
	AlwaysShowTopLabels bool
}

// Tier opacities and leaf weights.
const (
	overviewAlpha  = 0.7
	onPathAlpha    = 0.8
	unrelatedAlpha = 0.25

	overviewValue    = 1
	highlightedValue = 6
	onPathValue      = 3
	unrelatedValue   = 0.4
)

type matcher struct {
	names map[string]struct{}
	ids   map[string]struct{}
}

func newMatcher(h Highlight) matcher {
	m := matcher{names: map[string]struct{}{}, ids: map[string]struct{}{}}
	for _, n := range h.Names {
		if n = strings.TrimSpace(n); n != "" {
			m.names[strings.ToLower(n)] = struct{}{}
		}
	}
	for _, id := range h.IDs {
		if id = strings.TrimSpace(id); id != "" {
			m.ids[id] = struct{}{}
		}
	}
	return m
}

func (m matcher) empty() bool {
	return len(m.names) == 0 && len(m.ids) == 0
}

func (m matcher) matches(n *Node) bool {
	if _, ok := m.names[strings.ToLower(n.Name)]; ok {
		return true
	}
	if n.ID == "" {
		return false
	}
	_, ok := m.ids[n.ID]
	return ok
}

// Empty reports whether h selects nothing.
func (h Highlight) Empty() bool {
	return newMatcher(h).empty()
}

// HighlightedPath returns the lower-cased names of every node lying on a
// path from root to a directly highlighted node, the root's name included.
func HighlightedPath(root *Node, h Highlight) map[string]struct{} {
	m := newMatcher(h)
	set := make(map[string]struct{})
	if root == nil || m.empty() {
		return set
	}

	type frame struct {
		node *Node
		path []string
	}
	stack := []frame{{root, nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		path := append(f.path[:len(f.path):len(f.path)], strings.ToLower(f.node.Name))
		if m.matches(f.node) {
			for _, name := range path {
				set[name] = struct{}{}
			}
		}
		for _, c := range f.node.Children {
			stack = append(stack, frame{c, path})
		}
	}
	return set
}

// Annotate returns a copy of root with color, value and label visibility
// resolved for h. The root node itself is copied as is; root is not
// modified.
func Annotate(root *Node, h Highlight, opts Options) *Node {
	if root == nil {
		return nil
	}
	m := newMatcher(h)
	onPath := HighlightedPath(root, h)

	out := *root
	if len(root.Children) > 0 {
		out.Children = make([]*Node, len(root.Children))
	}

	type frame struct {
		src         *Node
		slot        **Node
		parentColor string
		level1Color string
	}
	stack := make([]frame, 0, len(root.Children))
	for i := len(root.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{src: root.Children[i], slot: &out.Children[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		src := f.src

		base := firstNonEmpty(src.Color, f.parentColor, f.level1Color, FallbackColor(src.Name), NeutralColor)
		level1 := f.level1Color
		if src.Level == 1 {
			level1 = base
		}

		highlighted := m.matches(src)
		_, along := onPath[strings.ToLower(src.Name)]

		var (
			color string
			value float64
		)
		switch {
		case m.empty():
			color, value = HexToRGBA(base, overviewAlpha), overviewValue
		case highlighted:
			color, value = base, highlightedValue
		case along:
			color, value = HexToRGBA(base, onPathAlpha), onPathValue
		default:
			color, value = HexToRGBA(base, unrelatedAlpha), unrelatedValue
		}

		node := &Node{
			ID:           src.ID,
			Name:         src.Name,
			Label:        src.Label,
			Level:        src.Level,
			Color:        color,
			LabelVisible: boolPtr(highlighted || along || (opts.AlwaysShowTopLabels && src.Level == 1)),
		}
		if src.IsLeaf() {
			node.Value = floatPtr(value)
		} else {
			node.Children = make([]*Node, len(src.Children))
			for i := len(src.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					src:         src.Children[i],
					slot:        &node.Children[i],
					parentColor: base,
					level1Color: level1,
				})
			}
		}
		*f.slot = node
	}
	return &out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
