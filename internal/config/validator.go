// Package config handles configuration loading and validation for Nametag.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ValidationSeverity represents the severity of a validation issue.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ConfigValidationError represents a single validation issue.
type ConfigValidationError struct {
	Field    string             // Config field with issue (e.g., "inputDirectory")
	Message  string             // Human-readable description
	Severity ValidationSeverity // "error" or "warning"
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ConfigValidationError
	Warnings []ConfigValidationError
	Valid    bool // True if no errors (warnings OK)
}

// ValidateConfig checks the configured paths against the file system
// and returns all findings. A missing reference table is an error (no
// matching is possible without it); a missing input directory is only
// a warning, since a run over zero files is a valid zero-count run.
func ValidateConfig(cfg *Configuration) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ConfigValidationError{},
		Warnings: []ConfigValidationError{},
		Valid:    true,
	}

	for _, finding := range ValidatePaths(cfg) {
		if finding.Severity == SeverityError {
			result.Errors = append(result.Errors, finding)
		} else {
			result.Warnings = append(result.Warnings, finding)
		}
	}

	result.Valid = len(result.Errors) == 0

	return result
}

// ValidatePaths checks that the configured paths exist where they must
// and are sane where they will be created.
func ValidatePaths(cfg *Configuration) []ConfigValidationError {
	var findings []ConfigValidationError

	// Reference table must exist and be a regular file.
	info, err := os.Stat(cfg.ReferenceTable)
	switch {
	case os.IsNotExist(err):
		findings = append(findings, ConfigValidationError{
			Field:    "referenceTable",
			Message:  "reference table does not exist: " + cfg.ReferenceTable,
			Severity: SeverityError,
		})
	case err != nil:
		findings = append(findings, ConfigValidationError{
			Field:    "referenceTable",
			Message:  "error accessing reference table: " + err.Error(),
			Severity: SeverityError,
		})
	case info.IsDir():
		findings = append(findings, ConfigValidationError{
			Field:    "referenceTable",
			Message:  "reference table path is a directory: " + cfg.ReferenceTable,
			Severity: SeverityError,
		})
	}

	// Input directory may be absent (zero-count run) but must be a
	// directory when present.
	info, err = os.Stat(cfg.InputDirectory)
	switch {
	case os.IsNotExist(err):
		findings = append(findings, ConfigValidationError{
			Field:    "inputDirectory",
			Message:  "input directory does not exist: " + cfg.InputDirectory,
			Severity: SeverityWarning,
		})
	case err != nil:
		findings = append(findings, ConfigValidationError{
			Field:    "inputDirectory",
			Message:  "error accessing input directory: " + err.Error(),
			Severity: SeverityError,
		})
	case !info.IsDir():
		findings = append(findings, ConfigValidationError{
			Field:    "inputDirectory",
			Message:  "input path is not a directory: " + cfg.InputDirectory,
			Severity: SeverityError,
		})
	}

	// Output directory is created on demand, but an existing
	// non-directory at that path can never work.
	info, err = os.Stat(cfg.OutputDirectory)
	if err == nil && !info.IsDir() {
		findings = append(findings, ConfigValidationError{
			Field:    "outputDirectory",
			Message:  "output path exists but is not a directory: " + cfg.OutputDirectory,
			Severity: SeverityError,
		})
	}

	// Tagged copies landing inside the input directory would be
	// re-enumerated on the next run (and re-tagged in watch mode).
	if directoriesOverlap(cfg.InputDirectory, cfg.OutputDirectory) {
		findings = append(findings, ConfigValidationError{
			Field:    "outputDirectory",
			Message:  "output directory overlaps the input directory: " + cfg.OutputDirectory,
			Severity: SeverityError,
		})
	}

	return findings
}

// directoriesOverlap checks if two directories overlap (equal, or one
// is an ancestor of the other).
func directoriesOverlap(dir1, dir2 string) bool {
	clean1 := filepath.Clean(dir1)
	clean2 := filepath.Clean(dir2)

	if clean1 == clean2 {
		return true
	}
	if strings.HasPrefix(clean2, clean1+string(filepath.Separator)) {
		return true
	}
	if strings.HasPrefix(clean1, clean2+string(filepath.Separator)) {
		return true
	}

	return false
}
