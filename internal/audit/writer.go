// Package audit provides an append-only operation log for Nametag runs.
package audit

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilename is the name of the audit log file within the log directory.
const LogFilename = "nametag-audit.jsonl"

// Writer handles all write operations to the audit log.
// It implements append-only semantics; events are flushed as they are
// written so a crashed run still leaves its trail.
type Writer struct {
	mu         sync.Mutex
	file       *os.File
	writer     *bufio.Writer
	logPath    string
	currentRun RunID
}

// NewWriter creates a new Writer with the given configuration.
// It creates the log directory if it doesn't exist and opens the log
// file for appending.
func NewWriter(config Config) (*Writer, error) {
	if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(config.LogDirectory, LogFilename)

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	return &Writer{
		file:    file,
		writer:  bufio.NewWriter(file),
		logPath: logPath,
	}, nil
}

// GenerateRunID generates a new run identifier from the current time
// and four random hex characters.
func GenerateRunID() (RunID, error) {
	suffix := make([]byte, 2)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate run ID: %w", err)
	}
	return RunID(fmt.Sprintf("%d-%02x%02x", time.Now().UnixNano(), suffix[0], suffix[1])), nil
}

// StartRun initializes a new run and writes the RUN_START event.
// The metadata map carries the run's configuration snapshot.
func (w *Writer) StartRun(metadata map[string]string) (RunID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runID, err := GenerateRunID()
	if err != nil {
		return "", err
	}

	event := Event{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		EventType: EventRunStart,
		Status:    StatusSuccess,
		Metadata:  metadata,
	}

	if err := w.writeEventLocked(event); err != nil {
		return "", fmt.Errorf("failed to write RUN_START event: %w", err)
	}

	w.currentRun = runID
	return runID, nil
}

// RecordTag writes a TAG event for one processed file.
func (w *Writer) RecordTag(event Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	event.EventType = EventTag
	event.RunID = w.currentRun
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	return w.writeEventLocked(event)
}

// EndRun writes the RUN_END event carrying the final counters.
func (w *Writer) EndRun(counters Counters) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	event := Event{
		Timestamp: time.Now().UTC(),
		RunID:     w.currentRun,
		EventType: EventRunEnd,
		Status:    StatusSuccess,
		Counters:  &counters,
	}

	return w.writeEventLocked(event)
}

// writeEventLocked writes an event while holding the lock.
// It marshals the event to JSON, appends a newline, and flushes.
func (w *Writer) writeEventLocked(event Event) error {
	data, err := event.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if _, err := w.writer.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}

	return nil
}

// LogPath returns the path of the log file being written.
func (w *Writer) LogPath() string {
	return w.logPath
}

// Close flushes and closes the log file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
