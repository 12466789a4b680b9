// Package orchestrator coordinates the file tagging workflow for Nametag.
package orchestrator

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"nametag/internal/audit"
	"nametag/internal/config"
	"nametag/internal/copier"
	"nametag/internal/matcher"
	"nametag/internal/output"
	"nametag/internal/registry"
	"nametag/internal/renamer"
	"nametag/internal/scanner"
)

// Orchestrator runs the tagging workflow: scan the input directory,
// resolve each file's project identifier against the reference table,
// and copy the file to the output directory under its tagged name.
type Orchestrator struct {
	config *config.Configuration
	table  *registry.Table
	out    *output.Output
	log    *audit.Writer // nil when auditing is disabled or unavailable

	mu       sync.Mutex // guards runOpen and counters
	runOpen  bool
	counters audit.Counters
}

// New builds an Orchestrator from a configuration file path.
// Loading the reference table is fatal; without it no matching is
// possible. An unavailable audit log only degrades to a warning.
func New(configPath string, out *output.Output) (*Orchestrator, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if out == nil {
		out = output.New(output.DefaultConfig())
	}
	// The configuration can turn verbose on for any caller, including
	// one that built its Output before loading the configuration.
	if cfg.Verbose {
		out.SetVerbose(true)
	}

	table, err := registry.Load(cfg.ReferenceTable)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference table: %w", err)
	}
	out.Verbose("Loaded %d projects from %s", table.Len(), cfg.ReferenceTable)

	o := &Orchestrator{
		config: cfg,
		table:  table,
		out:    out,
	}

	if !cfg.Audit.Disabled && !cfg.DryRun {
		log, err := audit.NewWriter(audit.Config{LogDirectory: cfg.Audit.LogDirectory})
		if err != nil {
			// The batch is the product; the log is advisory.
			out.Error("Warning: audit log unavailable: %v", err)
		} else {
			o.log = log
		}
	}

	return o, nil
}

// Config returns the loaded configuration.
func (o *Orchestrator) Config() *config.Configuration {
	return o.config
}

// Close ends any audit run still open and releases the audit log.
func (o *Orchestrator) Close() error {
	o.endAuditRun()
	if o.log == nil {
		return nil
	}
	return o.log.Close()
}

// RunBatch processes every matching file currently in the input
// directory and returns the run summary. A missing or empty input
// directory is a zero-count run, not an error; per-file copy failures
// are recorded in the summary and the batch continues.
func (o *Orchestrator) RunBatch() (*Summary, error) {
	summary := NewSummary()

	validation := config.ValidateConfig(o.config)
	for _, warning := range validation.Warnings {
		summary.Warnings = append(summary.Warnings, fmt.Errorf("%s: %s", warning.Field, warning.Message))
	}
	if !validation.Valid {
		issue := validation.Errors[0]
		return nil, fmt.Errorf("%s: %s", issue.Field, issue.Message)
	}

	files, err := scanner.Scan(o.config.InputDirectory, o.config.Extensions)
	if err != nil {
		var scanErr *scanner.ScanError
		if errors.As(err, &scanErr) && scanErr.Type == scanner.DirectoryNotFound {
			// Nothing to process; report a zero-count run.
			files = nil
		} else {
			return nil, fmt.Errorf("failed to scan %s: %w", o.config.InputDirectory, err)
		}
	}

	o.out.Verbose("Processing %d files from %s", len(files), o.config.InputDirectory)

	o.startAuditRun()

	o.out.StartProgress(len(files))
	for i, file := range files {
		o.out.UpdateProgress(i + 1)
		result := o.ProcessFile(file)
		summary.Record(result)
		o.reportResult(result)
	}
	o.out.EndProgress()

	// In watch mode the run stays open so that session TAG events land
	// before RUN_END; Close writes it once the watcher stops.
	if o.config.Watch == nil {
		o.endAuditRun()
	}

	return summary, nil
}

// ProcessFile runs one file through the tagging pipeline: extract the
// project-name fragment, match it against the reference table, compose
// and truncate the output filename, and copy the file. The copy is
// skipped in dry-run mode.
func (o *Orchestrator) ProcessFile(file scanner.FileEntry) Result {
	fragment := renamer.Fragment(file.Name)
	match := matcher.Find(fragment, o.table)

	composed := renamer.Compose(match.Identifier, file.Name)
	outputName := renamer.Truncate(composed, o.config.MaxFilenameBytes)

	result := Result{
		SourceName: file.Name,
		SourcePath: file.FullPath,
		OutputName: outputName,
		OutputPath: filepath.Join(o.config.OutputDirectory, outputName),
		Identifier: match.Identifier,
		Strategy:   match.Strategy,
		Fragment:   fragment,
		Truncated:  outputName != composed,
	}

	if !o.config.DryRun {
		result.Err = copier.Copy(file.FullPath, result.OutputPath)
	}

	o.recordAuditTag(result)

	return result
}

// reportResult prints the per-file line. Unmatched files also show the
// fragment that was used for matching so the reference table can be
// fixed up.
func (o *Orchestrator) reportResult(result Result) {
	if result.Matched() {
		o.out.Info("[%s] %s", result.Identifier, result.SourceName)
	} else {
		o.out.Info("[%s] %s (fragment: %s)", matcher.Unknown, result.SourceName, result.Fragment)
	}
	if result.Truncated {
		o.out.Verbose("  truncated to %s", result.OutputName)
	}
	if result.Matched() {
		o.out.Verbose("  matched via %s", result.Strategy)
	}
}

// startAuditRun opens an audit run with a configuration snapshot.
func (o *Orchestrator) startAuditRun() {
	if o.log == nil {
		return
	}
	_, err := o.log.StartRun(map[string]string{
		"inputDirectory":  o.config.InputDirectory,
		"outputDirectory": o.config.OutputDirectory,
		"referenceTable":  o.config.ReferenceTable,
	})
	if err != nil {
		o.out.Error("Warning: audit log disabled: %v", err)
		o.log = nil
		return
	}
	o.mu.Lock()
	o.runOpen = true
	o.counters = audit.Counters{}
	o.mu.Unlock()
}

// recordAuditTag writes the TAG event for one processed file and folds
// its outcome into the run counters. Watch-mode handlers call this
// concurrently from debounce timers.
func (o *Orchestrator) recordAuditTag(result Result) {
	if o.log == nil {
		return
	}
	o.mu.Lock()
	if !o.runOpen {
		o.mu.Unlock()
		return
	}
	o.counters.TotalFiles++
	if result.Matched() {
		o.counters.Matched++
	} else {
		o.counters.Unmatched++
	}
	if result.Truncated {
		o.counters.Truncated++
	}
	if result.Err != nil {
		o.counters.Errors++
	}
	o.mu.Unlock()

	event := audit.Event{
		Status:     audit.StatusSuccess,
		SourcePath: result.SourcePath,
		OutputName: result.OutputName,
		Identifier: result.Identifier,
		Strategy:   string(result.Strategy),
		Truncated:  result.Truncated,
	}
	if result.Err != nil {
		event.Status = audit.StatusFailure
		event.ErrorDetail = result.Err.Error()
	}
	if err := o.log.RecordTag(event); err != nil {
		o.out.Error("Warning: audit log disabled: %v", err)
		o.log = nil
	}
}

// endAuditRun closes the audit run with the accumulated counters.
// It is a no-op when no run is open, so the batch path and Close can
// both call it safely.
func (o *Orchestrator) endAuditRun() {
	if o.log == nil {
		return
	}
	o.mu.Lock()
	open := o.runOpen
	o.runOpen = false
	counters := o.counters
	o.mu.Unlock()
	if !open {
		return
	}
	if err := o.log.EndRun(counters); err != nil {
		o.out.Error("Warning: audit log disabled: %v", err)
		o.log = nil
	}
}

// Run executes a whole batch from a configuration file path.
// It is the convenience entry point used by the CLI.
func Run(configPath string) (*Summary, error) {
	orch, err := New(configPath, nil)
	if err != nil {
		return nil, err
	}
	defer orch.Close()

	return orch.RunBatch()
}
