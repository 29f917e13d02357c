package lang

import (
	"log/slog"
	"slices"
	"strings"
)

// Entry is one operand of an expression.
type Entry struct {
	Text      string // Head command with trailing groups removed
	Full      string // Entire fragment text
	Intersect bool   // Preceded by '&'
}

// Group is an [Entry] plus the contents of its trailing bracketed or
// parenthesized groups, in source order.
type Group struct {
	Entry

	Args []string
}

// Parse splits input into top-level operands and peels the trailing
// "[...]" and "(...)" groups off each one.
//
// A fragment made only of groups, such as "(a&b)", has an empty head; its
// arguments hold the sub-expression.
func Parse(input string) ([]Group, error) {
	frags, err := Split(input)
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(frags))

	for _, f := range frags {
		head, args, err := peel(f.Text)
		if err != nil {
			return nil, err
		}

		groups = append(groups, Group{
			Entry: Entry{
				Text:      head,
				Full:      f.Text,
				Intersect: f.Op == OpIntersect,
			},
			Args: args,
		})
	}

	return groups, nil
}

// peel removes trailing delimited groups from s, returning the remaining
// head and the group contents in source order.
func peel(s string) (string, []string, error) {
	var args []string

	for {
		s = strings.TrimRight(s, " \t")

		n := len(s)
		if n == 0 || (s[n-1] != ')' && s[n-1] != ']') {
			break
		}

		open := matchOpen(s)
		if open < 0 {
			return "", nil, ErrSyntax.WithInput(s).
				With(slog.String("issue", "group has no opening delimiter"))
		}

		args = append(args, s[open+1:n-1])
		s = s[:open]
	}

	// collected right to left
	slices.Reverse(args)

	return strings.TrimSpace(s), args, nil
}

// matchOpen returns the index of the delimiter opening the group that ends
// s, or -1.
func matchOpen(s string) int {
	depth := 0

	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')', ']':
			depth++
		case '(', '[':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
