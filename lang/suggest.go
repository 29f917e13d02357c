package lang

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// MaxSuggestions bounds the alias suggestions attached to an unknown
// transform error.
const MaxSuggestions = 3

// Suggest returns up to [MaxSuggestions] aliases that fuzzily match name,
// best first.
func Suggest(name string, aliases []string) []string {
	if name == "" || len(aliases) == 0 {
		return nil
	}

	matches := fuzzy.Find(strings.ToLower(name), aliases)

	out := make([]string, 0, min(len(matches), MaxSuggestions))
	for _, m := range matches {
		if len(out) == MaxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
