package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "try", "clear", "quit"}

// operators separate one transform from the next; whatever follows one
// begins with an alias.
const operators = "&,(["

// isWordBoundary reports whether r delimits a completion word.
func isWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(operators+")]%", r)
}

// wordBounds returns the word at cursor and its byte boundaries within
// input. The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// fragmentStart returns the byte offset just past the operator or weight
// prefix that begins the transform containing pos.
func fragmentStart(input string, pos int) int {
	i := strings.LastIndexAny(input[:pos], operators)

	head := input[i+1 : pos]
	if j := strings.LastIndexByte(head, '%'); j >= 0 {
		return i + 1 + j + 1
	}

	return i + 1
}

// atHead reports whether the word starting at wordStart is the alias of
// its transform rather than an argument.
func atHead(input string, wordStart int) bool {
	return strings.TrimSpace(input[fragmentStart(input, wordStart):wordStart]) == ""
}

// currentAlias returns the alias of the transform under cursor and the
// index of the argument being typed, or false while the alias itself is
// still being typed.
func currentAlias(input string, cursor int) (alias string, arg int, ok bool) {
	cursor = min(max(cursor, 0), len(input))

	text := input[fragmentStart(input, cursor):cursor]

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", 0, false
	}

	arg = len(fields) - 1
	if !strings.HasSuffix(text, " ") {
		if arg == 0 {
			return "", 0, false
		}

		arg--
	}

	return fields[0], arg, true
}

// computeMatches ranks the candidates for the word at the cursor. Only
// the alias position of a transform is completed in eval mode.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, wordStart, wordEnd
	}

	var candidates []string

	switch {
	case m.mode == modeCtrl:
		if strings.TrimSpace(input[:wordStart]) != "" {
			return nil, wordStart, wordEnd
		}

		candidates = ctrlCommands

	case atHead(input, wordStart):
		candidates = m.catalog.Aliases()
	}

	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing)
// uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		last := i == len(matches)-1

		reserve := ellipsisWidth
		if last {
			reserve = 0
		}

		if i > 0 && used+entryWidth+reserve > width {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := suggestionStyle.Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}

// renderUsageHint renders usage with the parameter at index arg
// highlighted. Words after the alias are parameters; a "|" separates
// alternative forms and is never highlighted.
func renderUsageHint(usage string, arg int) string {
	highlight := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

	words := strings.Fields(usage)

	param := -1

	for i, w := range words {
		if i > 0 && w == "|" {
			param = 0
			words[i] = hintStyle.Render(w)

			continue
		}

		if i > 0 && param == arg {
			words[i] = highlight.Render(w)
		} else {
			words[i] = hintStyle.Render(w)
		}

		param++
	}

	return strings.Join(words, " ")
}
