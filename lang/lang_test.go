package lang

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ardnew/xform/transform"
	"github.com/ardnew/xform/vec"
)

// testRegistry resolves a fixed set of aliases for the tests in this package.
type testRegistry struct{}

func (testRegistry) Aliases() []string {
	return []string{"a", "b", "c", "identity", "rotate", "fail", "wrap"}
}

func (r testRegistry) HasAlias(name string) bool {
	for _, a := range r.Aliases() {
		if a == name {
			return true
		}
	}

	return false
}

func (testRegistry) Resolve(
	ctx context.Context,
	name string,
	args []string,
	nested Nested,
) (*transform.Node, error) {
	switch name {
	case "identity":
		return transform.Identity(), nil

	case "rotate":
		if len(args) != 1 {
			return nil, fmt.Errorf("rotate takes 1 argument, got %d", len(args))
		}

		deg, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, err
		}

		return transform.NewLeaf(name, args, vec.RotateY(deg)), nil

	case "fail":
		return nil, errors.New("always fails")

	case "wrap":
		if len(args) != 1 {
			return nil, errors.New("wrap takes one expression")
		}

		return nested(ctx, args[0])

	default:
		return transform.NewLeaf(name, args, vec.Translate(1, 0, 0)), nil
	}
}

func newTestEngine(opts ...Option) *Engine {
	return New(testRegistry{}, opts...)
}
