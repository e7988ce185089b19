package search

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/types"
)

// ErrNotText is the cause carried by an IoError when the file is not valid UTF-8
var ErrNotText = errors.New("file is not valid UTF-8 text")

// Load reads the whole file at path and splits it into lines. Any failure is
// returned as a *types.IoError wrapping the underlying cause.
func Load(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.IoError{Path: path, Err: err}
	}

	if !utf8.Valid(data) {
		return nil, &types.IoError{Path: path, Err: ErrNotText}
	}

	doc := &types.Document{
		Path:  path,
		Lines: SplitLines(string(data)),
	}

	slog.Debug("Loaded document", "path", path, "bytes", len(data), "lines", len(doc.Lines))
	return doc, nil
}

// SplitLines splits text on \n, stripping a trailing \r from each line. A final
// terminator does not start another line, so "" yields no lines and "a\n"
// yields one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
