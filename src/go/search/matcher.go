package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/config"
)

// Span is a half-open byte range [Start, End) of a query occurrence in a line
type Span struct {
	Start int
	End   int
}

// Matcher decides whether a line is selected by the query.
// A Matcher is not safe for concurrent use.
type Matcher struct {
	rawQuery   string
	query      string
	ignoreCase bool
	wholeWord  bool
	invert     bool
	fold       cases.Caser
}

// NewMatcher builds a Matcher for the query and options in cfg
func NewMatcher(cfg *config.Config) *Matcher {
	m := &Matcher{
		rawQuery:   cfg.Query,
		query:      cfg.Query,
		ignoreCase: cfg.IgnoreCase,
		wholeWord:  cfg.WholeWord,
		invert:     cfg.InvertMatch,
	}

	if m.ignoreCase {
		m.fold = cases.Fold()
		m.query = m.fold.String(cfg.Query)
	}

	return m
}

// Match reports whether line is selected
func (m *Matcher) Match(line string) bool {
	text := line
	if m.ignoreCase {
		text = m.fold.String(line)
	}
	return m.contains(text) != m.invert
}

// contains tests containment of the (already folded) query in text
func (m *Matcher) contains(text string) bool {
	if !m.wholeWord {
		return strings.Contains(text, m.query)
	}

	for from := 0; from <= len(text); {
		idx := strings.Index(text[from:], m.query)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(m.query)
		if isWordBoundary(text, start, end) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			return false
		}
		from = start + size
	}
	return false
}

// Spans returns the non-overlapping occurrences of the query in the original
// line, for highlighting. Under case folding only occurrences with the same
// rune count as the query are found, so a line may match without any span.
// Inverted matchers never report spans.
func (m *Matcher) Spans(line string) []Span {
	if m.invert || m.rawQuery == "" {
		return nil
	}

	n := utf8.RuneCountInString(m.rawQuery)
	var spans []Span

	for start := 0; start < len(line); {
		end := advanceRunes(line, start, n)
		if end < 0 {
			break
		}

		window := line[start:end]
		equal := window == m.rawQuery
		if m.ignoreCase {
			equal = strings.EqualFold(window, m.rawQuery)
		}

		if equal && (!m.wholeWord || isWordBoundary(line, start, end)) {
			spans = append(spans, Span{Start: start, End: end})
			start = end
			continue
		}

		_, size := utf8.DecodeRuneInString(line[start:])
		start += size
	}

	return spans
}

// advanceRunes returns the byte offset n runes after start, or -1 if the
// string ends first
func advanceRunes(s string, start, n int) int {
	pos := start
	for i := 0; i < n; i++ {
		if pos >= len(s) {
			return -1
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
	}
	return pos
}

// isWordBoundary reports whether s[start:end] is neither preceded nor
// followed by a word rune
func isWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
