package lang

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/xform/transform"
)

func mustParse(t *testing.T, eng *Engine, input string) *transform.Node {
	t.Helper()

	n, err := eng.Parse(t.Context(), input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}

	if n == nil {
		t.Fatalf("Parse(%q) returned nil node", input)
	}

	return n
}

func TestEngine_Parse_Deterministic(t *testing.T) {
	eng := newTestEngine()

	for _, input := range []string{
		"a",
		"rotate 90,b&c",
		"30%rotate 90,70%(a&b)",
		"(a&b),c",
		"wrap[a,b]&2*3%c",
	} {
		t.Run(input, func(t *testing.T) {
			first := mustParse(t, eng, input)

			for range 3 {
				if again := mustParse(t, eng, input); !first.Equal(again) {
					t.Errorf("Parse(%q) not deterministic: %v vs %v", input, first, again)
				}
			}
		})
	}
}

func TestEngine_Parse_SingleMemberCollapse(t *testing.T) {
	n := mustParse(t, newTestEngine(), "rotate 90")

	if n.Kind() != transform.KindLeaf || n.Name() != "rotate" {
		t.Errorf("expected bare rotate leaf, got %v %q", n.Kind(), n.String())
	}

	if args := n.Args(); len(args) != 1 || args[0] != "90" {
		t.Errorf("unexpected args %q", args)
	}
}

func TestEngine_Parse_IntersectionWeightIsSum(t *testing.T) {
	n := mustParse(t, newTestEngine(), "30%a&0.5%b&c")

	if n.Kind() != transform.KindIntersection {
		t.Fatalf("expected intersection, got %v", n.Kind())
	}

	if got, want := n.Weight(), 30+0.5+1.0; got != want {
		t.Errorf("Weight = %v, want %v", got, want)
	}

	alt := mustParse(t, newTestEngine(), "30%a&b,c")

	members := alt.Members()
	if len(members) != 2 || members[0].Weight != 31 || members[1].Weight != 1 {
		t.Errorf("unexpected alternation members %+v", members)
	}
}

func TestEngine_Parse_PercentShorthand(t *testing.T) {
	n := mustParse(t, newTestEngine(), "30%identity,70%identity")

	if n.Kind() != transform.KindAlternation {
		t.Fatalf("expected alternation, got %v", n.Kind())
	}

	members := n.Members()
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	for i, want := range []float64{30, 70} {
		if members[i].Weight != want || members[i].Node.Kind() != transform.KindIdentity {
			t.Errorf("member %d = %v weight %v, want identity weight %v",
				i, members[i].Node, members[i].Weight, want)
		}
	}
}

func TestEngine_Parse_PercentExpressions(t *testing.T) {
	tests := []struct {
		input  string
		weight float64
	}{
		{"2*3%a,b", 6},
		{"(1+1)/4%a,b", 0.5},
		{"0%a,b", 0},
		{"10%rotate[90],b", 10},
		{"5% rotate 90,b", 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := mustParse(t, newTestEngine(), tt.input)

			if got := n.Members()[0].Weight; got != tt.weight {
				t.Errorf("weight = %v, want %v", got, tt.weight)
			}
		})
	}
}

func TestEngine_Parse_NestedGroup(t *testing.T) {
	n := mustParse(t, newTestEngine(), "(a&b),c")

	if n.Kind() != transform.KindAlternation {
		t.Fatalf("expected alternation, got %v", n.Kind())
	}

	members := n.Members()
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	inter := members[0].Node
	if inter.Kind() != transform.KindIntersection {
		t.Fatalf("expected intersection first, got %v", inter.Kind())
	}

	names := []string{inter.Members()[0].Node.Name(), inter.Members()[1].Node.Name()}
	if names[0] != "a" || names[1] != "b" {
		t.Errorf("intersection members = %v", names)
	}

	if members[1].Node.Kind() != transform.KindLeaf || members[1].Node.Name() != "c" {
		t.Errorf("expected leaf c second, got %v", members[1].Node)
	}
}

func TestEngine_Parse_Empty(t *testing.T) {
	eng := newTestEngine()

	for _, input := range []string{"", "   "} {
		n, err := eng.Parse(t.Context(), input)
		if n != nil || err != nil {
			t.Errorf("Parse(%q) = %v, %v; want nil, nil", input, n, err)
		}
	}

	for _, input := range []string{"()", "30%", "a,()"} {
		if _, err := eng.Parse(t.Context(), input); !errors.Is(err, ErrNoMatch) {
			t.Errorf("Parse(%q) error = %v, want NoMatch", input, err)
		}
	}
}

func TestEngine_Parse_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"a&", ErrDanglingOperator},
		{"a&,b", ErrDanglingOperator},
		{"a,b&", ErrDanglingOperator},
		{"(a", ErrUnbalancedGroup},
		{"zzz", ErrUnknownTransform},
		{"a,zzz 1", ErrUnknownTransform},
		{"fail x", ErrUnknownTransform},
		{"rotate 1 2", ErrUnknownTransform},
		{"1/%a", ErrEval},
		{"-1%a", ErrEval},
		{"x+%a", ErrEval},
		{"30%(a&)", ErrDanglingOperator},
		{"wrap[a&]", ErrDanglingOperator},
		{"wrap[zzz]", ErrUnknownTransform},
		{"(b,(c&))", ErrDanglingOperator},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := newTestEngine().Parse(t.Context(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestEngine_Parse_NestedErrorNamesOuterInput(t *testing.T) {
	_, err := newTestEngine().Parse(t.Context(), "b,30%((c&))")

	var le *Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *Error, got %T", err)
	}

	if le.Kind() != KindDanglingOperator {
		t.Errorf("kind = %v, want DanglingOperator", le.Kind())
	}

	if le.Input() != "30%((c&))" {
		t.Errorf("input = %q", le.Input())
	}

	if msg := err.Error(); strings.Count(msg, nestedMessage) != 1 ||
		!strings.Contains(msg, "dangling operator") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestEngine_Parse_UnknownSuggestsAliases(t *testing.T) {
	_, err := newTestEngine().Parse(t.Context(), "rotat 90")

	if !errors.Is(err, ErrUnknownTransform) {
		t.Fatalf("expected unknown transform, got %v", err)
	}

	if !strings.Contains(err.Error(), "did you mean rotate?") {
		t.Errorf("expected suggestion in %q", err.Error())
	}

	var le *Error
	if errors.As(err, &le) && le.Input() != "rotat 90" {
		t.Errorf("expected full operand text, got %q", le.Input())
	}
}

func TestEngine_Parse_MaxDepth(t *testing.T) {
	input := "((((a))))"

	if _, err := newTestEngine(WithMaxDepth(2)).Parse(t.Context(), input); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("expected max depth error, got %v", err)
	}

	if n := mustParse(t, newTestEngine(), input); n.Name() != "a" {
		t.Errorf("expected leaf a, got %v", n)
	}
}

func TestEngine_Parse_StringRoundTrip(t *testing.T) {
	eng := newTestEngine()

	for _, input := range []string{
		"rotate 90",
		"30%a,70%b",
		"a&b,c",
		"(a&b),c",
		"5%(a&b),c",
		"(a,b)&0.5%c",
		"rotate[90]&wrap[b,c]",
	} {
		t.Run(input, func(t *testing.T) {
			n := mustParse(t, eng, input)

			again := mustParse(t, eng, n.String())
			if !n.Equal(again) {
				t.Errorf("round trip %q -> %q changed the tree", input, n.String())
			}
		})
	}
}

func TestEngine_Parse_Cache(t *testing.T) {
	c := NewCache()
	eng := newTestEngine(WithCache(c))

	first := mustParse(t, eng, "a&b,c")
	second := mustParse(t, eng, "a&b,c")

	if first != second {
		t.Error("expected cached tree to be reused")
	}

	_, err1 := eng.Parse(t.Context(), "a&")
	_, err2 := eng.Parse(t.Context(), "a&")

	if err1 == nil || err1 != err2 {
		t.Errorf("expected cached error, got %v and %v", err1, err2)
	}

	if c.Len() != 2 {
		t.Errorf("expected 2 cache entries, got %d", c.Len())
	}

	c.Reset()

	if c.Len() != 0 {
		t.Errorf("expected empty cache after Reset, got %d", c.Len())
	}
}

func TestEngine_Parse_SharedCache(t *testing.T) {
	c := NewCache()

	for _, w := range []float64{3, 7} {
		eng := newTestEngine(WithCache(c), WithEvaluator(constEvaluator(w)))

		n := mustParse(t, eng, "x%a,b")
		if got := n.Members()[0].Weight; got != w {
			t.Errorf("evaluator %v: weight = %v", w, got)
		}
	}

	mustParse(t, newTestEngine(WithCache(c)), "((((a))))")

	shallow := newTestEngine(WithCache(c), WithMaxDepth(2))
	if _, err := shallow.Parse(t.Context(), "((((a))))"); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("expected max depth error from shallow engine, got %v", err)
	}
}

func TestEngine_Parse_AliasWhitespace(t *testing.T) {
	for _, input := range []string{"rotate\t90", "rotate \t 90"} {
		n := mustParse(t, newTestEngine(), input)

		if n.Kind() != transform.KindLeaf || n.Name() != "rotate" {
			t.Errorf("%q: expected rotate leaf, got %q", input, n.String())
		}

		if args := n.Args(); len(args) != 1 || args[0] != "90" {
			t.Errorf("%q: unexpected args %q", input, args)
		}
	}
}

func TestEngine_Parse_Concurrent(t *testing.T) {
	eng := newTestEngine(WithCache(NewCache()))

	inputs := []string{"a&b,c", "30%rotate 90,b", "(a,b)&c", "a&"}

	var wg sync.WaitGroup

	for i := range 64 {
		wg.Go(func() {
			input := inputs[i%len(inputs)]

			_, err := eng.Parse(t.Context(), input)
			if (err != nil) != (input == "a&") {
				t.Errorf("Parse(%q) error = %v", input, err)
			}
		})
	}

	wg.Wait()
}
