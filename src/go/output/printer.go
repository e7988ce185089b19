// Package output renders search matches to a writer.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/config"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/search"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/types"
)

// highlightColor is the ANSI color used for matched substrings
const highlightColor = "1"

// Printer writes matches in the configured format
type Printer struct {
	w           io.Writer
	format      string
	query       string
	path        string
	lineNumbers bool
	highlight   bool
	style       lipgloss.Style
	matcher     *search.Matcher
}

// NewPrinter creates a Printer for cfg. The matcher is only consulted for
// highlighting and may be nil.
func NewPrinter(w io.Writer, cfg *config.Config, matcher *search.Matcher) *Printer {
	p := &Printer{
		w:           w,
		format:      cfg.Output.Format,
		query:       cfg.Query,
		path:        cfg.Path,
		lineNumbers: cfg.LineNumbers,
		matcher:     matcher,
	}

	if p.format != config.FormatText || matcher == nil || cfg.InvertMatch {
		return p
	}

	renderer := lipgloss.NewRenderer(w)
	switch cfg.Output.Color {
	case config.ColorAlways:
		renderer.SetColorProfile(termenv.ANSI)
		p.highlight = true
	case config.ColorAuto:
		p.highlight = renderer.ColorProfile() != termenv.Ascii
	}

	p.style = renderer.NewStyle().
		Foreground(lipgloss.Color(highlightColor)).
		Bold(true).
		TabWidth(lipgloss.NoTabConversion)
	return p
}

// Print renders every match in seq
func (p *Printer) Print(seq iter.Seq[types.Match]) error {
	switch p.format {
	case config.FormatJSON:
		return p.printJSON(p.result(seq))
	case config.FormatYAML:
		return p.printYAML(p.result(seq))
	default:
		return p.printText(seq)
	}
}

func (p *Printer) result(seq iter.Seq[types.Match]) types.SearchResult {
	matches := search.Collect(seq)
	return types.SearchResult{
		Query:   p.query,
		Path:    p.path,
		Matches: matches,
		Total:   len(matches),
	}
}

func (p *Printer) printText(seq iter.Seq[types.Match]) error {
	for match := range seq {
		text := match.Text
		if p.highlight {
			text = p.highlightSpans(text)
		}

		var err error
		if p.lineNumbers {
			_, err = fmt.Fprintf(p.w, "%d: %s\n", match.LineNumber, text)
		} else {
			_, err = fmt.Fprintln(p.w, text)
		}
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func (p *Printer) highlightSpans(line string) string {
	spans := p.matcher.Spans(line)
	if len(spans) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, span := range spans {
		b.WriteString(line[last:span.Start])
		b.WriteString(p.style.Render(line[span.Start:span.End]))
		last = span.End
	}
	b.WriteString(line[last:])
	return b.String()
}

func (p *Printer) printJSON(result types.SearchResult) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

func (p *Printer) printYAML(result types.SearchResult) error {
	encoder := yaml.NewEncoder(p.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return nil
}
