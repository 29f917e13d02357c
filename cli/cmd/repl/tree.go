package repl

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ardnew/xform/transform"
)

var (
	treeKindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	treeLeafStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	treeWeightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	treeBranchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderTree draws n as an indented tree. Alternation members are labeled
// with their weight and selection probability, intersection members with
// their weight.
func RenderTree(n *transform.Node) string {
	if n == nil {
		return ""
	}

	return buildTree(n).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeBranchStyle).
		String()
}

func buildTree(n *transform.Node) *tree.Tree {
	t := tree.Root(nodeLabel(n))

	if n.Kind() != transform.KindIntersection && n.Kind() != transform.KindAlternation {
		return t
	}

	total := n.Weight()

	for _, m := range n.Members() {
		label := weightLabel(n.Kind(), m.Weight, total)

		switch m.Node.Kind() {
		case transform.KindIntersection, transform.KindAlternation:
			child := buildTree(m.Node)
			t.Child(child.Root(label + " " + nodeLabel(m.Node)))

		default:
			t.Child(label + " " + nodeLabel(m.Node))
		}
	}

	return t
}

func nodeLabel(n *transform.Node) string {
	switch n.Kind() {
	case transform.KindLeaf:
		return treeLeafStyle.Render(n.String())

	case transform.KindIntersection, transform.KindAlternation:
		return treeKindStyle.Render(n.Kind().String())

	default:
		return treeLeafStyle.Render(n.Name())
	}
}

func weightLabel(parent transform.Kind, weight, total float64) string {
	var sb strings.Builder

	sb.WriteString(strconv.FormatFloat(weight, 'g', 4, 64))

	if parent == transform.KindAlternation && total > 0 {
		sb.WriteString(" (")
		sb.WriteString(strconv.FormatFloat(100*weight/total, 'f', 1, 64))
		sb.WriteString("%)")
	}

	return treeWeightStyle.Render("[" + sb.String() + "]")
}
