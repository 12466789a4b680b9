// Package audit provides an append-only operation log for Nametag runs.
package audit

import (
	"encoding/json"
	"time"
)

// ISO8601Format is the time format used for audit event timestamps.
const ISO8601Format = time.RFC3339

// Event is a single audit log record.
type Event struct {
	Timestamp   time.Time
	RunID       RunID
	EventType   EventType
	Status      OperationStatus
	SourcePath  string
	OutputName  string
	Identifier  string
	Strategy    string
	Truncated   bool
	ErrorDetail string
	Counters    *Counters
	Metadata    map[string]string
}

// eventJSON is the internal representation for JSON marshaling.
// It uses pointers for optional fields to properly handle omitempty.
type eventJSON struct {
	Timestamp   string            `json:"timestamp"`
	RunID       RunID             `json:"runId"`
	EventType   EventType         `json:"eventType"`
	Status      OperationStatus   `json:"status"`
	SourcePath  *string           `json:"sourcePath,omitempty"`
	OutputName  *string           `json:"outputName,omitempty"`
	Identifier  *string           `json:"identifier,omitempty"`
	Strategy    *string           `json:"strategy,omitempty"`
	Truncated   bool              `json:"truncated,omitempty"`
	ErrorDetail *string           `json:"errorDetail,omitempty"`
	Counters    *Counters         `json:"counters,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON implements json.Marshaler for Event.
// Timestamps are written in ISO 8601 format and optional fields are
// omitted when empty.
func (e Event) MarshalJSON() ([]byte, error) {
	ej := eventJSON{
		Timestamp: e.Timestamp.Format(ISO8601Format),
		RunID:     e.RunID,
		EventType: e.EventType,
		Status:    e.Status,
		Truncated: e.Truncated,
		Counters:  e.Counters,
		Metadata:  e.Metadata,
	}

	if e.SourcePath != "" {
		ej.SourcePath = &e.SourcePath
	}
	if e.OutputName != "" {
		ej.OutputName = &e.OutputName
	}
	if e.Identifier != "" {
		ej.Identifier = &e.Identifier
	}
	if e.Strategy != "" {
		ej.Strategy = &e.Strategy
	}
	if e.ErrorDetail != "" {
		ej.ErrorDetail = &e.ErrorDetail
	}

	return json.Marshal(ej)
}

// UnmarshalJSON implements json.Unmarshaler for Event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var ej eventJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return err
	}

	timestamp, err := time.Parse(ISO8601Format, ej.Timestamp)
	if err != nil {
		return err
	}

	e.Timestamp = timestamp
	e.RunID = ej.RunID
	e.EventType = ej.EventType
	e.Status = ej.Status
	e.Truncated = ej.Truncated
	e.Counters = ej.Counters
	e.Metadata = ej.Metadata

	if ej.SourcePath != nil {
		e.SourcePath = *ej.SourcePath
	}
	if ej.OutputName != nil {
		e.OutputName = *ej.OutputName
	}
	if ej.Identifier != nil {
		e.Identifier = *ej.Identifier
	}
	if ej.Strategy != nil {
		e.Strategy = *ej.Strategy
	}
	if ej.ErrorDetail != nil {
		e.ErrorDetail = *ej.ErrorDetail
	}

	return nil
}
