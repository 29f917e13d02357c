package transform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// String renders n as expression text that rebuilds an equal tree.
func (n *Node) String() string {
	var sb strings.Builder

	n.writeTo(&sb)

	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	switch n.kind {
	case KindLeaf:
		sb.WriteString(n.name)

		for _, a := range n.args {
			sb.WriteByte(' ')

			if strings.ContainsAny(a, " ,&()[]%") {
				sb.WriteString("[" + a + "]")
			} else {
				sb.WriteString(a)
			}
		}

	case KindIntersection, KindAlternation:
		sep := ","
		if n.kind == KindIntersection {
			sep = "&"
		}

		for i, m := range n.members {
			if i > 0 {
				sb.WriteString(sep)
			}

			writeMember(sb, n.kind, m)
		}

	default:
		sb.WriteString(n.name)
	}
}

// writeMember writes one member, adding a percent weight when it differs
// from the weight the builder would infer and parentheses when the member
// would otherwise merge into its parent.
func writeMember(sb *strings.Builder, parent Kind, m Member) {
	combinator := m.Node.kind == KindIntersection || m.Node.kind == KindAlternation

	// An unparenthesized intersection inside an alternation carries the sum
	// of its member weights; a parenthesized group always weighs 1.
	bare := m.Node.kind == KindIntersection && parent == KindAlternation &&
		m.Weight == m.Node.total

	switch {
	case bare:
		m.Node.writeTo(sb)

		return

	case m.Weight != 1:
		sb.WriteString(strconv.FormatFloat(m.Weight, 'g', -1, 64) + "%")
	}

	if combinator {
		sb.WriteByte('(')
	}

	m.Node.writeTo(sb)

	if combinator {
		sb.WriteByte(')')
	}
}

// Equal reports whether n and o have the same shape, names, arguments and
// weights. Leaf implementations are not compared.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}

	if n == nil || o == nil || n.kind != o.kind || n.name != o.name ||
		len(n.args) != len(o.args) || len(n.members) != len(o.members) {
		return false
	}

	for i := range n.args {
		if n.args[i] != o.args[i] {
			return false
		}
	}

	for i := range n.members {
		if n.members[i].Weight != o.members[i].Weight ||
			!n.members[i].Node.Equal(o.members[i].Node) {
			return false
		}
	}

	return true
}

// ToMap converts n to a native map suitable for JSON or YAML encoding.
func (n *Node) ToMap() map[string]any {
	m := map[string]any{"kind": n.kind.String()}

	switch n.kind {
	case KindLeaf:
		m["name"] = n.name
		if len(n.args) > 0 {
			m["args"] = n.Args()
		}

		m["identity"] = n.leaf.IsIdentity()

	case KindIntersection, KindAlternation:
		members := make([]any, len(n.members))
		for i, mm := range n.members {
			members[i] = map[string]any{
				"weight": mm.Weight,
				"node":   mm.Node.ToMap(),
			}
		}

		m["weight"] = n.total
		m["members"] = members
	}

	return m
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToMap())
}

// Format writes n as expression text followed by a newline.
func (n *Node) Format(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, n.String())

	return err
}

// FormatJSON writes n as JSON. A positive indent pretty-prints.
func (n *Node) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(n.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(n.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes n as YAML. A non-positive indent selects flow style.
func (n *Node) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, n.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
