package types

import (
	"fmt"
)

// Match represents a single line selected by a search
type Match struct {
	LineNumber int    `json:"line" yaml:"line"`
	Text       string `json:"text" yaml:"text"`
}

// Document is the loaded content of the searched file
type Document struct {
	Path  string
	Lines []string
}

// SearchResult is the structured form of a completed search, used by the
// json and yaml output formats
type SearchResult struct {
	Query   string  `json:"query" yaml:"query"`
	Path    string  `json:"path" yaml:"path"`
	Matches []Match `json:"matches" yaml:"matches"`
	Total   int     `json:"total" yaml:"total"`
}

// ArgumentError reports malformed or missing command-line input
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

// NewArgumentError builds an ArgumentError from a format string
func NewArgumentError(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// IoError reports that the target file could not be opened or read
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}
