package repl

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ardnew/xform/catalog"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "rot", 3, "rot", 0, 3},
		{"after_intersect", "flip&ro", 7, "ro", 5, 7},
		{"after_alternate", "flip,ro", 7, "ro", 5, 7},
		{"after_weight", "2%ro", 4, "ro", 2, 4},
		{"after_group", "(ro", 3, "ro", 1, 3},
		{"after_bracket", "repeat 2 [ro", 12, "ro", 10, 12},
		{"argument", "rotate 9", 8, "9", 7, 8},
		{"mid_word", "rotate", 3, "rotate", 0, 6},
		{"empty_at_boundary", "flip&", 5, "", 5, 5},
		{"cursor_past_end", "flip", 10, "flip", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestAtHead(t *testing.T) {
	tests := []struct {
		input     string
		wordStart int
		want      bool
	}{
		{"rot", 0, true},
		{"  rot", 2, true},
		{"flip & ro", 7, true},
		{"30%ro", 3, true},
		{"rotate 90", 7, false},
		{"flip,rotate 9", 12, false},
		{"repeat 2 [ro", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := atHead(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("atHead(%q, %d) = %v, want %v",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestCurrentAlias(t *testing.T) {
	tests := []struct {
		input     string
		wantAlias string
		wantArg   int
		wantOK    bool
	}{
		{"", "", 0, false},
		{"rota", "", 0, false},
		{"rotate ", "rotate", 0, true},
		{"rotate 90", "rotate", 0, true},
		{"rotate 90 ", "rotate", 1, true},
		{"flip&offset 1 2", "offset", 1, true},
		{"2%scale 1 ", "scale", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			alias, arg, ok := currentAlias(tt.input, len(tt.input))
			if alias != tt.wantAlias || arg != tt.wantArg || ok != tt.wantOK {
				t.Errorf("currentAlias(%q) = (%q, %d, %v), want (%q, %d, %v)",
					tt.input, alias, arg, ok, tt.wantAlias, tt.wantArg, tt.wantOK)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"alias", modeEval, "flip&rot", []string{"rotate"}},
		{"argument", modeEval, "flip x", nil},
		{"empty", modeEval, "flip&", nil},
		{"command", modeCtrl, "cl", []string{"clear"}},
		{"command_argument", modeCtrl, "try 1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ti := textinput.New()
			ti.SetValue(tt.input)
			ti.SetCursor(len(tt.input))

			m := model{input: ti, mode: tt.mode, catalog: catalog.Default()}

			matches, _, _ := m.computeMatches()

			var got []string
			for _, match := range matches {
				got = append(got, match.Str)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
