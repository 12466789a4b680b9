// Package audit provides an append-only operation log for Nametag runs.
// Each run writes one RUN_START event, one TAG event per processed
// file, and one RUN_END event with the final counters, as JSON lines.
package audit

// RunID is a unique identifier for each program execution.
type RunID string

// EventType represents the type of audit event.
type EventType string

const (
	// Run lifecycle events
	EventRunStart EventType = "RUN_START"
	EventRunEnd   EventType = "RUN_END"

	// File operation events
	EventTag EventType = "TAG"
)

// OperationStatus represents the outcome of an operation.
type OperationStatus string

const (
	StatusSuccess OperationStatus = "SUCCESS"
	StatusFailure OperationStatus = "FAILURE"
)

// Counters holds the run-level statistics recorded on RUN_END.
type Counters struct {
	TotalFiles int `json:"totalFiles"`
	Matched    int `json:"matched"`
	Unmatched  int `json:"unmatched"`
	Truncated  int `json:"truncated"`
	Errors     int `json:"errors"`
}

// Config holds audit log settings.
type Config struct {
	LogDirectory string
}
