package catalog

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/ardnew/xform/transform"
	"github.com/ardnew/xform/vec"
)

//nolint:gochecknoglobals
var builtins = []struct {
	name    string
	usage   string
	factory Factory
}{
	{"identity", "identity", identity},
	{"rotate", "rotate <y> [x] [z]", rotate},
	{"flip", "flip [x|y|z]", flip},
	{"scale", "scale <s> | <sx sy sz>", scale},
	{"offset", "offset <dx dy dz>", offset},
	{"repeat", "repeat <n> <expr>", repeat},
}

func identity(_ context.Context, call Call) (*transform.Node, error) {
	if err := call.Arity(0, 0); err != nil {
		return nil, err
	}

	return transform.Identity(), nil
}

func rotate(ctx context.Context, call Call) (*transform.Node, error) {
	if err := call.Arity(1, 3); err != nil {
		return nil, err
	}

	deg, err := call.Floats(ctx)
	if err != nil {
		return nil, err
	}

	a := vec.RotateY(deg[0])
	if len(deg) > 1 {
		a = a.Then(vec.RotateX(deg[1]))
	}

	if len(deg) > 2 {
		a = a.Then(vec.RotateZ(deg[2]))
	}

	return transform.NewLeaf(call.Name, call.Args, a), nil
}

func flip(_ context.Context, call Call) (*transform.Node, error) {
	if err := call.Arity(0, 1); err != nil {
		return nil, err
	}

	axis := "x"
	if len(call.Args) > 0 {
		axis = strings.ToLower(call.Args[0])
	}

	var a vec.Affine

	switch axis {
	case "x":
		a = vec.Scale(-1, 1, 1)
	case "y":
		a = vec.Scale(1, -1, 1)
	case "z":
		a = vec.Scale(1, 1, -1)
	default:
		return nil, ErrBadArg.With(slog.String("alias", call.Name), slog.String("axis", axis))
	}

	return transform.NewLeaf(call.Name, call.Args, a), nil
}

func scale(ctx context.Context, call Call) (*transform.Node, error) {
	if err := call.Arity(1, 3); err != nil {
		return nil, err
	}

	s, err := call.Floats(ctx)
	if err != nil {
		return nil, err
	}

	switch len(s) {
	case 1:
		return transform.NewLeaf(call.Name, call.Args, vec.Scale(s[0], s[0], s[0])), nil
	case 3:
		return transform.NewLeaf(call.Name, call.Args, vec.Scale(s[0], s[1], s[2])), nil
	default:
		return nil, ErrArgCount.With(slog.String("alias", call.Name), slog.Int("got", len(s)))
	}
}

func offset(ctx context.Context, call Call) (*transform.Node, error) {
	if err := call.Arity(3, 3); err != nil {
		return nil, err
	}

	d, err := call.Floats(ctx)
	if err != nil {
		return nil, err
	}

	return transform.NewLeaf(call.Name, call.Args, vec.Translate(d[0], d[1], d[2])), nil
}

// maxRepeat bounds repeat counts.
const maxRepeat = 360

func repeat(ctx context.Context, call Call) (*transform.Node, error) {
	if len(call.Args) < 2 {
		return nil, ErrArgCount.With(slog.String("alias", call.Name), slog.Int("got", len(call.Args)))
	}

	f, err := call.Float(ctx, 0)
	if err != nil {
		return nil, err
	}

	if f != math.Trunc(f) || f < 1 || f > maxRepeat {
		return nil, ErrBadArg.With(slog.String("alias", call.Name), slog.Float64("count", f))
	}

	n, err := call.Nested(ctx, strings.Join(call.Args[1:], " "))
	if err != nil {
		return nil, err
	}

	if f == 1 {
		return n, nil
	}

	members := make([]transform.Member, int(f))
	for i := range members {
		members[i] = transform.Member{Node: n, Weight: 1}
	}

	return transform.NewIntersection(members...)
}
