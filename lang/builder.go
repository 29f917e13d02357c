package lang

import (
	"log/slog"

	"github.com/ardnew/xform/transform"
)

// intersectionBuilder accumulates '&'-joined operands.
type intersectionBuilder struct {
	members  []transform.Member
	dangling bool // buffer opened with an '&' operand
}

func (b *intersectionBuilder) add(m transform.Member, intersect bool) {
	if len(b.members) == 0 {
		b.dangling = intersect
	}

	b.members = append(b.members, m)
}

// flush moves the buffered operands into alt as one item and resets b.
func (b *intersectionBuilder) flush(alt *alternationBuilder, input string) error {
	defer func() { b.members, b.dangling = nil, false }()

	switch len(b.members) {
	case 0:
		return nil

	case 1:
		if b.dangling {
			return ErrDanglingOperator.WithInput(input).
				With(slog.String("operator", OpIntersect.String()))
		}

		alt.add(b.members[0])

		return nil

	default:
		n, err := transform.NewIntersection(b.members...)
		if err != nil {
			return ErrSyntax.WithInput(input).Wrap(err)
		}

		alt.add(transform.Member{Node: n, Weight: n.Weight()})

		return nil
	}
}

// alternationBuilder accumulates the top-level items of an expression.
type alternationBuilder struct {
	members []transform.Member
}

func (b *alternationBuilder) add(m transform.Member) {
	b.members = append(b.members, m)
}

// finish returns the single item unwrapped, or an alternation over all of
// them in source order.
func (b *alternationBuilder) finish(input string) (*transform.Node, error) {
	switch len(b.members) {
	case 0:
		return nil, ErrNoMatch.WithInput(input)

	case 1:
		return b.members[0].Node, nil

	default:
		n, err := transform.NewAlternation(b.members...)
		if err != nil {
			return nil, ErrSyntax.WithInput(input).Wrap(err)
		}

		return n, nil
	}
}
