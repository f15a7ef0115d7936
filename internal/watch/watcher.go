package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultInterval is the polling interval used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// DefaultIgnore contains the patterns skipped when none are configured.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
}

// Config configures a Watcher.
type Config struct {
	// Paths are the files and directories to watch.
	Paths []string

	// Ignore lists base names or globs matched against base names.
	Ignore []string

	// Extensions restricts watched files, e.g. []string{".js"}. Empty
	// watches every file.
	Extensions []string

	// Interval is the polling interval.
	Interval time.Duration
}

// Watcher reports modified, created and deleted files.
type Watcher struct {
	config     Config
	mu         sync.Mutex
	timestamps map[string]time.Time
}

// New creates a Watcher and records the current state of its paths.
func New(config Config) *Watcher {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}

	w := &Watcher{
		config:     config,
		timestamps: make(map[string]time.Time),
	}
	w.timestamps = w.scan()
	return w
}

// Run polls until ctx is done and calls onChange with the sorted paths that
// changed since the previous poll. onChange runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func([]string)) error {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if changed := w.Poll(); len(changed) > 0 {
				onChange(changed)
			}
		}
	}
}

// Poll rescans the watched paths once and returns what changed.
func (w *Watcher) Poll() []string {
	current := w.scan()

	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for p, mod := range current {
		if last, ok := w.timestamps[p]; !ok || !mod.Equal(last) {
			changed = append(changed, p)
		}
	}
	for p := range w.timestamps {
		if _, ok := current[p]; !ok {
			changed = append(changed, p)
		}
	}
	w.timestamps = current

	sort.Strings(changed)
	return changed
}

func (w *Watcher) scan() map[string]time.Time {
	seen := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if p != root && w.ignored(p) {
					return filepath.SkipDir
				}
				return nil
			}
			if w.ignored(p) || !w.wanted(p) {
				return nil
			}
			seen[p] = info.ModTime()
			return nil
		})
	}
	return seen
}

func (w *Watcher) ignored(p string) bool {
	name := filepath.Base(p)
	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) wanted(p string) bool {
	if len(w.config.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range w.config.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
