package lang

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestExprEvaluator_Evaluate(t *testing.T) {
	var e ExprEvaluator

	tests := []struct {
		src     string
		want    float64
		wantErr bool
	}{
		{"30", 30, false},
		{" 2.5 ", 2.5, false},
		{"10*3+2", 32, false},
		{"2**3", 8, false},
		{"pi", math.Pi, false},
		{"", 0, true},
		{"1/", 0, true},
		{"\"text\"", 0, true},
		{"undefinedName", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := e.Evaluate(t.Context(), tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Evaluate(%q) error = %v, wantErr %v", tt.src, err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrEval) {
				t.Errorf("expected eval kind, got %v", err)
			}

			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestExprEvaluator_CachesPrograms(t *testing.T) {
	var e ExprEvaluator

	for range 3 {
		if _, err := e.Evaluate(t.Context(), "1+2"); err != nil {
			t.Fatal(err)
		}
	}

	n := 0

	e.programs.Range(func(_, _ any) bool {
		n++

		return true
	})

	if n != 1 {
		t.Errorf("expected 1 cached program, got %d", n)
	}
}

type constEvaluator float64

func (c constEvaluator) Evaluate(_ context.Context, _ string) (float64, error) {
	return float64(c), nil
}

func TestEngine_WithEvaluator(t *testing.T) {
	eng := newTestEngine(WithEvaluator(constEvaluator(7)))

	n := mustParse(t, eng, "anything%a,b")
	if got := n.Members()[0].Weight; got != 7 {
		t.Errorf("weight = %v, want 7", got)
	}

	if _, err := newTestEngine(WithEvaluator(constEvaluator(math.Inf(1)))).
		Parse(t.Context(), "x%a,b"); !errors.Is(err, ErrEval) {
		t.Errorf("expected eval error for infinite weight, got %v", err)
	}
}
