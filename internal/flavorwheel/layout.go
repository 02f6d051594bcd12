package flavorwheel

import (
	"math"
	"sort"
)

// FullCircle is the angular span of the whole wheel, in radians.
const FullCircle = 2 * math.Pi

// normalizeTolerance is how far (radians) a span may drift before it is
// rescaled.
const normalizeTolerance = 0.001

type LayoutOptions struct {
	// Radius of the outermost ring. Non-positive means 1.
	Radius float64
	// Padding is subtracted from every arc's angular span.
	Padding float64
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{Radius: 1, Padding: 0.001}
}

// Segment is a node of the partitioned wheel: X0/X1 are angles, Y0/Y1 radii.
type Segment struct {
	Node     *Node
	Depth    int
	Weight   float64
	X0, X1   float64
	Y0, Y1   float64
	Parent   *Segment
	Children []*Segment
}

func (s *Segment) Span() float64 {
	return s.X1 - s.X0
}

// Arc is a flattened segment, ready to draw.
type Arc struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Depth        int      `json:"depth"`
	StartAngle   float64  `json:"startAngle"`
	EndAngle     float64  `json:"endAngle"`
	InnerRadius  float64  `json:"innerRadius"`
	OuterRadius  float64  `json:"outerRadius"`
	Color        string   `json:"color"`
	TextColor    string   `json:"textColor"`
	LabelVisible bool     `json:"labelVisible"`
	Path         []string `json:"path,omitempty"`
}

// Layout partitions root into rings, normalizes the angles and returns one
// arc per node below the root, in depth-first order.
func Layout(root *Node, opts LayoutOptions) []Arc {
	if root == nil {
		return nil
	}
	seg := Partition(root, opts)
	NormalizeAngles(seg)
	return Arcs(seg)
}

// Partition sizes every node by leaf weight and splits the circle
// proportionally at each depth. Leaf weight is the node's value, or 1 when
// it has none; siblings are ordered heaviest first, then by name.
func Partition(root *Node, opts LayoutOptions) *Segment {
	if opts.Radius <= 0 {
		opts.Radius = 1
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	top := sum(root, nil, 0)

	height := 0
	top.walk(func(s *Segment) {
		if s.Depth > height {
			height = s.Depth
		}
	})
	ring := opts.Radius / float64(height+1)

	top.X0, top.X1 = 0, FullCircle
	top.walk(func(s *Segment) {
		s.Y0 = float64(s.Depth) * ring
		s.Y1 = float64(s.Depth+1) * ring
		// Children divide the parent's span before the parent is padded.
		if len(s.Children) > 0 && s.Weight > 0 {
			x, k := s.X0, s.Span()/s.Weight
			for _, c := range s.Children {
				c.X0 = x
				x += c.Weight * k
				c.X1 = x
			}
		}
		if s.Parent == nil {
			return
		}
		x1 := s.X1 - opts.Padding
		if x1 < s.X0 {
			mid := (s.X0 + x1) / 2
			s.X0, x1 = mid, mid
		}
		s.X1 = x1
	})
	return top
}

func sum(n *Node, parent *Segment, depth int) *Segment {
	s := &Segment{Node: n, Depth: depth, Parent: parent}
	if n.IsLeaf() {
		s.Weight = 1
		if n.Value != nil && *n.Value > 0 {
			s.Weight = *n.Value
		}
		return s
	}
	s.Children = make([]*Segment, 0, len(n.Children))
	for _, c := range n.Children {
		cs := sum(c, s, depth+1)
		s.Weight += cs.Weight
		s.Children = append(s.Children, cs)
	}
	sort.SliceStable(s.Children, func(i, j int) bool {
		a, b := s.Children[i], s.Children[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.Node.Name < b.Node.Name
	})
	return s
}

// walk visits s and its descendants, parents before children.
func (s *Segment) walk(fn func(*Segment)) {
	stack := []*Segment{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// NormalizeAngles removes drift left by proportional partitioning. The top
// ring is stretched to cover the full circle; below it, whenever siblings'
// spans add up to something other than their parent's span, they are
// rescaled to start at the parent's start and fill its span exactly.
// Siblings whose span is within tolerance are left alone unless their
// parent moved, in which case they are re-anchored onto it.
func NormalizeAngles(root *Segment) {
	if root == nil || len(root.Children) == 0 {
		return
	}
	if total := childSpan(root); math.Abs(total-FullCircle) > normalizeTolerance && total > 0 {
		rescale(root.Children, 0, FullCircle/total)
		for _, c := range root.Children {
			normalizeBelow(c)
		}
		return
	}
	normalizeBelow(root)
}

func normalizeBelow(s *Segment) {
	stack := []*Segment{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(cur.Children) == 0 {
			continue
		}
		total := childSpan(cur)
		switch {
		case total > 0 && math.Abs(total-cur.Span()) > normalizeTolerance:
			rescale(cur.Children, cur.X0, cur.Span()/total)
		case total > 0 && cur.Children[0].X0 != cur.X0:
			// The parent moved when its own ring was rescaled.
			rescale(cur.Children, cur.X0, cur.Span()/total)
		}
		stack = append(stack, cur.Children...)
	}
}

func childSpan(s *Segment) float64 {
	var total float64
	for _, c := range s.Children {
		total += c.Span()
	}
	return total
}

func rescale(children []*Segment, start, scale float64) {
	x := start
	for _, c := range children {
		span := c.Span()
		c.X0 = x
		c.X1 = x + span*scale
		x = c.X1
	}
}

// Arcs flattens every segment below the root.
func Arcs(root *Segment) []Arc {
	var arcs []Arc
	root.walk(func(s *Segment) {
		if s.Parent == nil {
			return
		}
		var path []string
		for p := s.Parent; p != nil && p.Parent != nil; p = p.Parent {
			path = append([]string{p.Node.Name}, path...)
		}
		color := s.Node.Color
		if color == "" {
			color = NeutralColor
		}
		arcs = append(arcs, Arc{
			ID:           s.Node.ID,
			Name:         s.Node.Name,
			Label:        s.Node.Label,
			Depth:        s.Depth,
			StartAngle:   s.X0,
			EndAngle:     s.X1,
			InnerRadius:  s.Y0,
			OuterRadius:  s.Y1,
			Color:        color,
			TextColor:    ContrastColor(color),
			LabelVisible: s.Node.LabelVisible != nil && *s.Node.LabelVisible,
			Path:         path,
		})
	})
	return arcs
}
