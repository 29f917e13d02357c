package transform

import (
	"errors"
	"math"
	"slices"

	"github.com/ardnew/xform/vec"
)

// Kind discriminates the variants of a [Node].
type Kind int

const (
	// KindIdentity leaves every vector unchanged.
	KindIdentity Kind = iota

	// KindLeaf delegates to an externally supplied [Leaf].
	KindLeaf

	// KindIntersection applies every member together.
	KindIntersection

	// KindAlternation applies one member chosen at random by weight.
	KindAlternation
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindLeaf:
		return "leaf"
	case KindIntersection:
		return "intersection"
	case KindAlternation:
		return "alternation"
	default:
		return "unknown"
	}
}

// Mapper maps vectors through a fully resolved transform.
type Mapper interface {
	Apply(v vec.Vector3) vec.Vector3
	IsIdentity() bool
}

// Leaf is an atomic transform implemented outside this package.
type Leaf interface {
	Mapper
}

// Rand is the source of randomness used to select alternation members.
// Implementations need not be safe for concurrent use; *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// Member is a weighted child of a combinator.
type Member struct {
	Node   *Node
	Weight float64
}

// Errors returned by the combinator constructors.
var (
	ErrTooFewMembers = errors.New("combinator requires at least two members")
	ErrNilMember     = errors.New("combinator member is nil")
	ErrBadWeight     = errors.New("weight must be finite and non-negative")
	ErrZeroTotal     = errors.New("alternation total weight must be positive")
)

// Node is one immutable vertex of a transform tree.
type Node struct {
	kind    Kind
	name    string
	args    []string
	leaf    Leaf
	members []Member
	total   float64
}

var identity = &Node{kind: KindIdentity, name: "identity"}

// Identity returns the shared identity node.
func Identity() *Node { return identity }

// NewLeaf returns a leaf node named name wrapping l. The name and args are
// retained for display and structural comparison only.
func NewLeaf(name string, args []string, l Leaf) *Node {
	if l == nil {
		return identity
	}

	return &Node{
		kind: KindLeaf,
		name: name,
		args: slices.Clone(args),
		leaf: l,
	}
}

// NewIntersection returns a node applying every member together. Its
// weight is the exact sum of member weights.
func NewIntersection(members ...Member) (*Node, error) {
	return newCombinator(KindIntersection, members)
}

// NewAlternation returns a node that applies exactly one member per
// selection, chosen with probability proportional to its weight.
func NewAlternation(members ...Member) (*Node, error) {
	n, err := newCombinator(KindAlternation, members)
	if err != nil {
		return nil, err
	}

	if n.total <= 0 {
		return nil, ErrZeroTotal
	}

	return n, nil
}

func newCombinator(kind Kind, members []Member) (*Node, error) {
	if len(members) < 2 {
		return nil, ErrTooFewMembers
	}

	var total float64

	for _, m := range members {
		if m.Node == nil {
			return nil, ErrNilMember
		}

		if m.Weight < 0 || math.IsNaN(m.Weight) || math.IsInf(m.Weight, 0) {
			return nil, ErrBadWeight
		}

		total += m.Weight
	}

	return &Node{
		kind:    kind,
		members: slices.Clone(members),
		total:   total,
	}, nil
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the alias a leaf was resolved from.
func (n *Node) Name() string { return n.name }

// Args returns a copy of the arguments a leaf was resolved with.
func (n *Node) Args() []string { return slices.Clone(n.args) }

// Leaf returns the wrapped leaf, or nil for other kinds.
func (n *Node) Leaf() Leaf { return n.leaf }

// Members returns a copy of the weighted children of a combinator.
func (n *Node) Members() []Member { return slices.Clone(n.members) }

// Weight returns the sum of member weights for combinators and 1 otherwise.
func (n *Node) Weight() float64 {
	switch n.kind {
	case KindIntersection, KindAlternation:
		return n.total
	default:
		return 1
	}
}

// IsIdentity reports whether n leaves every vector unchanged. Combinators
// are identities only when every member is.
func (n *Node) IsIdentity() bool {
	switch n.kind {
	case KindIdentity:
		return true
	case KindLeaf:
		return n.leaf.IsIdentity()
	case KindIntersection, KindAlternation:
		for _, m := range n.members {
			if !m.Node.IsIdentity() {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Select draws u in [0, total) from rng and returns the first member whose
// cumulative weight exceeds u. It returns n itself for any kind other than
// alternation.
func (n *Node) Select(rng Rand) *Node {
	if n.kind != KindAlternation {
		return n
	}

	u := rng.Float64() * n.total

	var sum float64

	for _, m := range n.members {
		sum += m.Weight
		if sum > u {
			return m.Node
		}
	}

	// u == total can only arise from rounding; fall back to the last member
	// that can be chosen at all.
	for _, m := range slices.Backward(n.members) {
		if m.Weight > 0 {
			return m.Node
		}
	}

	return n.members[len(n.members)-1].Node
}
