// Package watcher provides file system monitoring for continuous tagging.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config contains watcher settings.
type Config struct {
	DebounceSeconds int      // Delay before processing a new file (default: 2)
	Extensions      []string // Document suffixes to process
	IgnorePatterns  []string // Glob patterns to ignore (e.g., "*.tmp", "*.part")
}

// Summary contains stats from a watch session.
type Summary struct {
	FilesTagged  int // Files copied with a resolved identifier
	FilesUnknown int // Files copied with the unknown sentinel
	FilesSkipped int // Files ignored or failed
	Duration     time.Duration
}

// FileHandler processes one settled file. It reports whether the file
// was matched to a project identifier, and any processing error.
type FileHandler func(path string) (matched bool, err error)

// Watcher monitors the input directory for new documents and pushes
// each settled file through the tagging pipeline.
type Watcher struct {
	config      *Config
	fileHandler FileHandler
	fsWatcher   *fsnotify.Watcher
	filter      *FileFilter
	debouncer   *Debouncer
	done        chan struct{}
	wg          sync.WaitGroup
	startTime   time.Time

	mu           sync.Mutex
	filesTagged  int
	filesUnknown int
	filesSkipped int
}

// New creates a Watcher with the given configuration and handler.
func New(config *Config, fileHandler FileHandler) *Watcher {
	if config.DebounceSeconds <= 0 {
		config.DebounceSeconds = 2
	}
	w := &Watcher{
		config:      config,
		fileHandler: fileHandler,
		filter:      NewFileFilter(config.Extensions, config.IgnorePatterns),
		done:        make(chan struct{}),
	}
	w.debouncer = NewDebouncer(time.Duration(config.DebounceSeconds)*time.Second, w.processFile)
	return w
}

// Start begins watching the given directory for new files.
// The watcher runs until Stop is called.
func (w *Watcher) Start(dir string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		w.fsWatcher.Close()
		return err
	}
	if err := w.fsWatcher.Add(absDir); err != nil {
		w.fsWatcher.Close()
		return err
	}

	w.startTime = time.Now()
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop shuts down the watcher and returns the session summary.
// Pending debounced files are dropped rather than processed, so a
// partially written download is never tagged on shutdown.
func (w *Watcher) Stop() *Summary {
	close(w.done)
	w.wg.Wait()

	w.debouncer.CancelAll()

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return &Summary{
		FilesTagged:  w.filesTagged,
		FilesUnknown: w.filesUnknown,
		FilesSkipped: w.filesSkipped,
		Duration:     time.Since(w.startTime),
	}
}

// processEvents handles file system events from fsnotify.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// New files arrive as Create; editors that write in place
			// surface as Write on the final save.
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.handleFileEvent(event.Name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// handleFileEvent filters one event and schedules the file for
// debounced processing.
func (w *Watcher) handleFileEvent(path string) {
	if !w.filter.ShouldProcess(path) {
		return
	}
	w.debouncer.Add(path)
}

// processFile runs the handler for a settled file and updates counters.
func (w *Watcher) processFile(path string) {
	if w.fileHandler == nil {
		return
	}

	matched, err := w.fileHandler(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case err != nil:
		w.filesSkipped++
	case matched:
		w.filesTagged++
	default:
		w.filesUnknown++
	}
}

// IsRunning returns true if the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return w.fsWatcher != nil
	}
}
