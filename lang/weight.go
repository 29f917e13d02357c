package lang

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator turns weight expression text into a number.
type Evaluator interface {
	Evaluate(ctx context.Context, src string) (float64, error)
}

// weightEnv is the constant environment visible to weight expressions.
var weightEnv = map[string]any{
	"pi": math.Pi,
	"e":  math.E,
}

// ExprEvaluator evaluates arithmetic with expr-lang. Compiled programs are
// cached by source text, so repeated weights compile once. The zero value
// is ready to use and safe for concurrent use.
type ExprEvaluator struct {
	programs sync.Map // string -> *vm.Program
}

// Evaluate compiles src as a float-valued expression and runs it.
func (e *ExprEvaluator) Evaluate(_ context.Context, src string) (float64, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return 0, ErrEval.With(slog.String("issue", "empty weight expression"))
	}

	program, err := e.compile(src)
	if err != nil {
		return 0, ErrEval.WithInput(src).Wrap(err)
	}

	out, err := expr.Run(program, weightEnv)
	if err != nil {
		return 0, ErrEval.WithInput(src).Wrap(err)
	}

	f, ok := out.(float64)
	if !ok {
		return 0, ErrEval.WithInput(src).
			With(slog.String("issue", "result is not a number"))
	}

	return f, nil
}

func (e *ExprEvaluator) compile(src string) (*vm.Program, error) {
	if p, ok := e.programs.Load(src); ok {
		if program, ok := p.(*vm.Program); ok {
			return program, nil
		}
	}

	program, err := expr.Compile(src, expr.Env(weightEnv), expr.AsFloat64())
	if err != nil {
		return nil, err
	}

	e.programs.Store(src, program)

	return program, nil
}

// evaluateWeight evaluates src and rejects weights that cannot take part in
// weighted selection.
func (eng *Engine) evaluateWeight(ctx context.Context, src string) (float64, error) {
	w, err := eng.eval.Evaluate(ctx, src)
	if err != nil {
		var le *Error
		if errors.As(err, &le) && le.kind == KindEval {
			return 0, err
		}

		return 0, ErrEval.WithInput(src).Wrap(err)
	}

	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, ErrEval.WithInput(src).
			With(slog.Float64("weight", w), slog.String("issue", "weight must be finite and non-negative"))
	}

	return w, nil
}
