// Package transform defines the immutable transform tree produced by the
// expression builder.
//
// A [Node] is a closed variant over four kinds: identity, leaf, weighted
// intersection and weighted alternation. Leaves wrap an opaque [Leaf]
// supplied by an alias registry; the tree never looks inside them.
//
// Trees are safe to share between goroutines. Randomness is supplied per
// call through [Rand], and [Node.Pick] resolves every alternation once so a
// caller can map several vectors of one entity with a single random choice:
//
//	m := node.Pick(rng, nil)
//	pos := m.Apply(pos)
//	dir := m.Apply(dir).Sub(m.Apply(vec.Zero))
package transform
