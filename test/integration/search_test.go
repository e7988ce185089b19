package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/cmd"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/config"
)

var testFiles = map[string]string{
	"main.go": `package main

import "fmt"

func main() {
    fmt.Println("Hello, World!")
}

func authenticate(username, password string) bool {
    return username == "admin" && password == "secret"
}
`,
	"utils.js": "export function authenticate(user, pass) {\r\n    return user === 'admin' && pass === 'password';\r\n}\r\n",
	"notes.txt": `Authenticate every request.
authentication is not authorization
AUTHENTICATE twice

trailing line without newline`,
	"empty.txt": "",
}

// reference is the straightforward definition of a search: the numbered
// lines that contain the query, in file order
func reference(content, query string, ignoreCase, lineNumbers bool) string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return ""
	}

	var b strings.Builder
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		hay, needle := line, query
		if ignoreCase {
			hay, needle = strings.ToLower(hay), strings.ToLower(needle)
		}
		if !strings.Contains(hay, needle) {
			continue
		}
		if lineNumbers {
			b.WriteString(strconv.Itoa(i+1) + ": ")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func TestEndToEndSearch(t *testing.T) {
	t.Setenv(config.IgnoreCaseEnv, "")
	tmpDir := t.TempDir()

	// Write test files
	for name, content := range testFiles {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test file %s: %v", name, err)
		}
	}

	queries := []string{"authenticate", "Authenticate", "admin", "line", "=", "zzz"}
	modes := []struct {
		name        string
		flags       []string
		ignoreCase  bool
		lineNumbers bool
	}{
		{"default", nil, false, false},
		{"ignore case", []string{"-i"}, true, false},
		{"line numbers", []string{"-n"}, false, true},
		{"both", []string{"-n", "-i"}, true, true},
	}

	for name, content := range testFiles {
		for _, query := range queries {
			for _, mode := range modes {
				t.Run(name+"/"+query+"/"+mode.name, func(t *testing.T) {
					args := append([]string{query, filepath.Join(tmpDir, name)}, mode.flags...)

					var stdout, stderr bytes.Buffer
					code := cmd.ExecuteContext(context.Background(), args, &stdout, &stderr)
					if code != cmd.ExitOK {
						t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
					}

					want := reference(content, query, mode.ignoreCase, mode.lineNumbers)
					if stdout.String() != want {
						t.Errorf("output mismatch\n got: %q\nwant: %q", stdout.String(), want)
					}
				})
			}
		}
	}
}

func TestEndToEndErrorsProduceNoOutput(t *testing.T) {
	t.Setenv(config.IgnoreCaseEnv, "")
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing path argument", []string{"query"}, cmd.ExitUsage},
		{"file not found", []string{"query", filepath.Join(tmpDir, "absent.txt")}, cmd.ExitFailure},
		{"directory", []string{"query", tmpDir}, cmd.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := cmd.ExecuteContext(context.Background(), tt.args, &stdout, &stderr)
			if code != tt.code {
				t.Errorf("exit code %d, want %d", code, tt.code)
			}
			if stdout.Len() != 0 {
				t.Errorf("expected no output, got %q", stdout.String())
			}
			if stderr.Len() == 0 {
				t.Error("expected an error message on stderr")
			}
		})
	}
}
