package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/xform/entity"
	"github.com/ardnew/xform/vec"
)

func TestParseRun(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		expr     string
		contains []string
	}{
		{"text", "text", "rotate 90 & flip", []string{"rotate 90&flip"}},
		{"tree", "tree", "3%flip,rotate 90", []string{"alternation", "75.0%", "rotate 90"}},
		{"json", "json", "flip", []string{`"kind": "leaf"`, `"name": "flip"`}},
		{"yaml", "yaml", "flip,identity", []string{"kind: alternation", "kind: identity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out")

			p := &Parse{Format: tt.format, Indent: 2, Output: out, Expr: tt.expr}
			if err := p.Run(t.Context()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}

			for _, want := range tt.contains {
				if !strings.Contains(string(data), want) {
					t.Errorf("output missing %q:\n%s", want, data)
				}
			}
		})
	}
}

func TestParseRun_Errors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")

	err := (&Parse{Format: "text", Output: out, Expr: "rotate 90&"}).Run(t.Context())
	if !errors.Is(err, ErrParseExpr) {
		t.Errorf("expected ErrParseExpr, got %v", err)
	}

	// an empty expression is not an error and writes nothing
	if err := (&Parse{Format: "text", Output: out, Expr: "  "}).Run(t.Context()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := os.Stat(out); err == nil {
		t.Error("expected no output file for an empty expression")
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseOutput(t *testing.T) {
	errClose := errors.New("disk full")
	errPrior := errors.New("prior")

	tests := []struct {
		name  string
		prior error
		close error
		want  error
	}{
		{"clean", nil, nil, nil},
		{"close_fails", nil, errClose, ErrWriteOutput},
		{"prior_kept", errPrior, errClose, errPrior},
		{"prior_only", errPrior, nil, errPrior},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prior
			closeOutput(&err, closerFunc(func() error { return tt.close }), "out.yaml")

			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}

			if tt.name == "close_fails" && !errors.Is(err, errClose) {
				t.Errorf("close error not wrapped: %v", err)
			}
		})
	}
}

const applySource = `
- position: {x: 1.5, y: 0, z: 0.5}
  direction: {x: 1, y: 0, z: 0}
  type: cow
`

func TestApplyRun(t *testing.T) {
	tests := []struct {
		name   string
		remove bool
		want   int
	}{
		{"copy", false, 2},
		{"move", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "in.yaml")
			out := filepath.Join(dir, "out.yaml")

			if err := os.WriteFile(src, []byte(applySource), 0o600); err != nil {
				t.Fatal(err)
			}

			a := &Apply{
				Source:  src,
				Output:  out,
				From:    "0,0,0",
				To:      "0,0,0",
				Seed:    1,
				Workers: 2,
				Remove:  tt.remove,
				Expr:    "offset 0 1 0",
			}

			if err := a.Run(t.Context()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			recs, err := entity.ReadRecords(t.Context(), f)
			if err != nil {
				t.Fatal(err)
			}

			if len(recs) != tt.want {
				t.Fatalf("expected %d records, got %d", tt.want, len(recs))
			}

			moved := recs[len(recs)-1]
			if !moved.Position.ApproxEqual(vec.Vector3{X: 1.5, Y: 1, Z: 0.5}, 1e-9) {
				t.Errorf("unexpected position %v", moved.Position)
			}

			if !moved.Direction.ApproxEqual(vec.Vector3{X: 1}, 1e-9) {
				t.Errorf("unexpected direction %v", moved.Direction)
			}
		})
	}
}

func TestApplyRun_Errors(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.yaml")
	if err := os.WriteFile(src, []byte(applySource), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		apply   Apply
		wantErr error
	}{
		{"bad from", Apply{Source: src, From: "1,2", To: "0,0,0", Expr: "flip"}, ErrBadVector},
		{"bad to", Apply{Source: src, From: "0,0,0", To: "x,y,z", Expr: "flip"}, ErrBadVector},
		{"bad expr", Apply{Source: src, From: "0,0,0", To: "0,0,0", Expr: "nosuch"}, ErrParseExpr},
		{"missing source", Apply{
			Source: filepath.Join(dir, "missing.yaml"),
			From:   "0,0,0", To: "0,0,0", Expr: "flip",
		}, ErrReadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply.Output = filepath.Join(dir, "out.yaml")

			err := tt.apply.Run(t.Context())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
