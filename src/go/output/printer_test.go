package output

import (
	"bytes"
	"encoding/json"
	"regexp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/config"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/search"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/types"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

var sample = []types.Match{
	{LineNumber: 2, Text: "safe, fast, productive."},
	{LineNumber: 5, Text: "safe again"},
}

func testConfig(modify func(*config.Config)) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Query = "safe"
	cfg.Path = "poem.txt"
	cfg.Output.Color = config.ColorNever
	if modify != nil {
		modify(cfg)
	}
	return cfg
}

func render(t *testing.T, cfg *config.Config, matches []types.Match) string {
	t.Helper()
	var buf bytes.Buffer
	p := NewPrinter(&buf, cfg, search.NewMatcher(cfg))
	require.NoError(t, p.Print(slices.Values(matches)))
	return buf.String()
}

func TestPrintText(t *testing.T) {
	out := render(t, testConfig(nil), sample)
	assert.Equal(t, "safe, fast, productive.\nsafe again\n", out)
}

func TestPrintTextWithLineNumbers(t *testing.T) {
	cfg := testConfig(func(c *config.Config) { c.LineNumbers = true })
	out := render(t, cfg, sample)
	assert.Equal(t, "2: safe, fast, productive.\n5: safe again\n", out)
}

func TestPrintTextNoMatches(t *testing.T) {
	assert.Empty(t, render(t, testConfig(nil), nil))
}

func TestPrintTextHighlight(t *testing.T) {
	cfg := testConfig(func(c *config.Config) {
		c.Output.Color = config.ColorAlways
		c.LineNumbers = true
	})
	out := render(t, cfg, sample[:1])

	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, "2: safe, fast, productive.\n", ansiPattern.ReplaceAllString(out, ""))
}

func TestPrintTextHighlightKeepsTabs(t *testing.T) {
	cfg := testConfig(func(c *config.Config) {
		c.Query = "a\tb"
		c.Output.Color = config.ColorAlways
	})
	out := render(t, cfg, []types.Match{{LineNumber: 1, Text: "x a\tb y"}})

	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, "x a\tb y\n", ansiPattern.ReplaceAllString(out, ""))
}

func TestPrintTextAutoColorOffForBuffers(t *testing.T) {
	cfg := testConfig(func(c *config.Config) { c.Output.Color = config.ColorAuto })
	out := render(t, cfg, sample)
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintTextNoHighlightWhenInverted(t *testing.T) {
	cfg := testConfig(func(c *config.Config) {
		c.Output.Color = config.ColorAlways
		c.InvertMatch = true
	})
	out := render(t, cfg, []types.Match{{LineNumber: 1, Text: "Rust:"}})
	assert.Equal(t, "Rust:\n", out)
}

func TestPrintJSON(t *testing.T) {
	cfg := testConfig(func(c *config.Config) { c.Output.Format = config.FormatJSON })
	out := render(t, cfg, sample)

	var got types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "safe", got.Query)
	assert.Equal(t, "poem.txt", got.Path)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, sample, got.Matches)
}

func TestPrintJSONEmptyMatchesIsArray(t *testing.T) {
	cfg := testConfig(func(c *config.Config) { c.Output.Format = config.FormatJSON })
	out := render(t, cfg, nil)
	assert.Contains(t, out, `"matches": []`)
	assert.Contains(t, out, `"total": 0`)
}

func TestPrintYAML(t *testing.T) {
	cfg := testConfig(func(c *config.Config) { c.Output.Format = config.FormatYAML })
	out := render(t, cfg, sample)

	var got types.SearchResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, sample, got.Matches)
	assert.Contains(t, out, "- line: 2\n")
}
