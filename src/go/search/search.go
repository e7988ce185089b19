// Package search loads a document and selects the lines that contain a query.
package search

import (
	"iter"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/types"
)

// Search yields the lines of doc selected by m, in document order, with their
// 1-based line numbers
func Search(doc *types.Document, m *Matcher) iter.Seq[types.Match] {
	return func(yield func(types.Match) bool) {
		for i, line := range doc.Lines {
			if !m.Match(line) {
				continue
			}
			if !yield(types.Match{LineNumber: i + 1, Text: line}) {
				return
			}
		}
	}
}

// Collect drains seq into a slice. The result is never nil.
func Collect(seq iter.Seq[types.Match]) []types.Match {
	matches := []types.Match{}
	for match := range seq {
		matches = append(matches, match)
	}
	return matches
}
