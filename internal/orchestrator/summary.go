// Package orchestrator coordinates the file tagging workflow for Nametag.
package orchestrator

import (
	"fmt"
	"strings"

	"nametag/internal/audit"
	"nametag/internal/matcher"
)

// Result represents the outcome of tagging a single file.
type Result struct {
	SourceName string
	SourcePath string
	OutputName string
	OutputPath string
	Identifier string
	Strategy   matcher.Strategy
	Fragment   string
	Truncated  bool
	Err        error
}

// Matched reports whether a project identifier was found for the file.
func (r *Result) Matched() bool {
	return r.Identifier != matcher.Unknown
}

// Summary represents the overall results of a Nametag run.
type Summary struct {
	TotalFiles int
	Matched    int
	Unmatched  int
	Truncated  int
	Errors     int
	Results    []Result
	Warnings   []error
}

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{
		Results:  []Result{},
		Warnings: []error{},
	}
}

// Record folds one file result into the counters.
// A file is counted matched or unmatched by its identifier regardless
// of whether the copy succeeded; copy failures count separately.
func (s *Summary) Record(result Result) {
	s.TotalFiles++
	if result.Matched() {
		s.Matched++
	} else {
		s.Unmatched++
	}
	if result.Truncated {
		s.Truncated++
	}
	if result.Err != nil {
		s.Errors++
	}
	s.Results = append(s.Results, result)
}

// HasErrors returns true if any file failed to copy.
func (s *Summary) HasErrors() bool {
	return s.Errors > 0
}

// Counters converts the summary totals into audit log counters.
func (s *Summary) Counters() audit.Counters {
	return audit.Counters{
		TotalFiles: s.TotalFiles,
		Matched:    s.Matched,
		Unmatched:  s.Unmatched,
		Truncated:  s.Truncated,
		Errors:     s.Errors,
	}
}

// PrintSummary returns the formatted end-of-run report.
func (s *Summary) PrintSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d files:\n", s.TotalFiles)
	fmt.Fprintf(&b, "  matched:   %d\n", s.Matched)
	fmt.Fprintf(&b, "  unmatched: %d\n", s.Unmatched)
	fmt.Fprintf(&b, "  truncated: %d", s.Truncated)
	if s.Errors > 0 {
		fmt.Fprintf(&b, "\n  errors:    %d", s.Errors)
	}
	return b.String()
}
