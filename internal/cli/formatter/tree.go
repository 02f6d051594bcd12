package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/roastery/internal/flavorwheel"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderWheel draws the flavor wheel as an indented tree with a color
// swatch per node. With emphasize set, nodes whose label the wheel would
// show are bold and the rest are dimmed. Categories carry their leaf count
// as a right-aligned badge.
func RenderWheel(root *flavorwheel.Node, emphasize bool) string {
	if root == nil || len(root.Children) == 0 {
		return Dim("(empty flavor wheel)") + "\n"
	}

	type line struct {
		content string
		badge   string
	}
	var lines []line
	width := 0

	var walk func(n *flavorwheel.Node, prefix string, last bool)
	walk = func(n *flavorwheel.Node, prefix string, last bool) {
		connector, childPrefix := treeBranch, prefix+treePipe
		if last {
			connector, childPrefix = treeCorner, prefix+treeBlank
		}

		name := n.Label
		if name == "" {
			name = n.Name
		}
		switch {
		case !emphasize:
			if n.Level == 1 {
				name = Bold(name)
			}
		case n.LabelVisible != nil && *n.LabelVisible:
			name = Bold(name)
		default:
			name = Dim(name)
		}

		l := line{content: Dim(prefix+connector) + Swatch(n.Color) + " " + name}
		if !n.IsLeaf() {
			l.badge = StyleBlue.Render(fmt.Sprintf("[ %d ]", leafCount(n)))
		}
		width = max(width, lipgloss.Width(l.content))
		lines = append(lines, l)

		for i, c := range n.Children {
			walk(c, childPrefix, i == len(n.Children)-1)
		}
	}
	for i, c := range root.Children {
		walk(c, "", i == len(root.Children)-1)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.content)
		if l.badge != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(l.content)+2) + l.badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func leafCount(n *flavorwheel.Node) int {
	count := 0
	n.Walk(func(node *flavorwheel.Node, _ int) {
		if node.IsLeaf() {
			count++
		}
	})
	return count
}
