package watcher

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileOperation represents the type of file operation
type FileOperation int

const (
	OpCreate FileOperation = iota
	OpModify
	OpDelete
)

func (op FileOperation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// FileEvent represents a settled change of the watched file
type FileEvent struct {
	Path      string
	Operation FileOperation
	Timestamp time.Time
	Hash      string // SHA-256 of file content, empty for deletes
	Size      int64
}

// Watcher monitors a single file. It watches the parent directory so that
// editors which save by renaming a new file over the old one are followed.
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	target       string
	eventQueue   chan FileEvent
	debounceTime time.Duration

	mu       sync.Mutex
	lastHash string
	timer    *time.Timer
}

// NewWatcher creates a watcher for path that settles bursts of changes for
// debounceMs milliseconds before reporting them
func NewWatcher(path string, debounceMs int) (*Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}

	return &Watcher{
		fsWatcher:    fsWatcher,
		target:       target,
		eventQueue:   make(chan FileEvent, 16),
		debounceTime: time.Duration(debounceMs) * time.Millisecond,
	}, nil
}

// Start begins watching. Events stop being delivered once ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.target)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.mu.Lock()
	w.lastHash = calculateFileHash(w.target)
	w.mu.Unlock()

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			slog.Warn("Watcher error", "error", err)
		}
	}
}

// schedule restarts the debounce timer
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceTime, func() {
		event := w.settle()
		if event == nil {
			return
		}
		select {
		case w.eventQueue <- *event:
		case <-ctx.Done():
		default:
			slog.Warn("Event queue full, dropping event", "path", event.Path)
		}
	})
}

// settle inspects the file after the debounce window and returns the event to
// report, or nil when the content did not change
func (w *Watcher) settle() *FileEvent {
	w.mu.Lock()
	defer w.mu.Unlock()

	event := &FileEvent{
		Path:      w.target,
		Timestamp: time.Now(),
	}

	stat, err := os.Stat(w.target)
	if err != nil {
		if w.lastHash == "" {
			return nil
		}
		w.lastHash = ""
		event.Operation = OpDelete
		return event
	}

	hash := calculateFileHash(w.target)
	if hash != "" && hash == w.lastHash {
		return nil
	}
	if w.lastHash == "" {
		event.Operation = OpCreate
	} else {
		event.Operation = OpModify
	}

	w.lastHash = hash
	event.Hash = hash
	event.Size = stat.Size()
	return event
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Events returns the event channel
func (w *Watcher) Events() <-chan FileEvent {
	return w.eventQueue
}

// Close stops the watcher
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fsWatcher.Close()
}

// calculateFileHash computes SHA-256 hash of file content
func calculateFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return ""
	}

	return fmt.Sprintf("%x", hash.Sum(nil))
}
