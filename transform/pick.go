package transform

import "github.com/ardnew/xform/vec"

// Part is one resolved member of an intersection handed to a [Combiner].
type Part struct {
	Mapper Mapper
	Weight float64
}

// Combiner blends the resolved members of an intersection into a single
// [Mapper]. The blending rule belongs to the environment that understands
// what the leaves mean; this package only keeps the weights.
type Combiner interface {
	Combine(parts []Part) Mapper
}

// CombinerFunc adapts an ordinary function to the [Combiner] interface.
type CombinerFunc func(parts []Part) Mapper

// Combine calls f(parts).
func (f CombinerFunc) Combine(parts []Part) Mapper { return f(parts) }

// Chain is the default [Combiner]. It composes members sequentially in
// stored order and ignores their weights.
var Chain Combiner = CombinerFunc(func(parts []Part) Mapper {
	c := make(chain, len(parts))
	for i, p := range parts {
		c[i] = p.Mapper
	}

	return c
})

type chain []Mapper

func (c chain) Apply(v vec.Vector3) vec.Vector3 {
	for _, m := range c {
		v = m.Apply(v)
	}

	return v
}

func (c chain) IsIdentity() bool {
	for _, m := range c {
		if !m.IsIdentity() {
			return false
		}
	}

	return true
}

type identityMapper struct{}

func (identityMapper) Apply(v vec.Vector3) vec.Vector3 { return v }
func (identityMapper) IsIdentity() bool                { return true }

// Pick resolves every alternation in n once using rng and returns the
// resulting fixed [Mapper]. Intersections are blended with c, or [Chain]
// when c is nil.
func (n *Node) Pick(rng Rand, c Combiner) Mapper {
	if c == nil {
		c = Chain
	}

	return n.pick(rng, c)
}

func (n *Node) pick(rng Rand, c Combiner) Mapper {
	switch n.kind {
	case KindLeaf:
		return n.leaf

	case KindAlternation:
		return n.Select(rng).pick(rng, c)

	case KindIntersection:
		parts := make([]Part, len(n.members))
		for i, m := range n.members {
			parts[i] = Part{Mapper: m.Node.pick(rng, c), Weight: m.Weight}
		}

		return c.Combine(parts)

	default:
		return identityMapper{}
	}
}
