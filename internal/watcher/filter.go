// Package watcher provides file system monitoring for continuous tagging.
package watcher

import (
	"path/filepath"
	"strings"

	"nametag/internal/scanner"
)

// DefaultIgnorePatterns returns the default patterns for in-flight
// files that should never be tagged.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.part",
		"*.partial",
		"*.download",
		"*.crdownload", // Chrome partial downloads
		".~*",          // Hidden temp files (e.g., .~lock)
	}
}

// FileFilter decides which watched paths enter the tagging pipeline:
// the filename must carry one of the configured document extensions
// and must not match an ignore pattern.
type FileFilter struct {
	extensions []string
	patterns   []string
}

// NewFileFilter creates a FileFilter. Empty extensions fall back to
// the scanner defaults; empty patterns fall back to the default
// temp-file patterns.
func NewFileFilter(extensions, patterns []string) *FileFilter {
	if len(extensions) == 0 {
		extensions = scanner.DefaultExtensions()
	}
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &FileFilter{
		extensions: extensions,
		patterns:   patterns,
	}
}

// ShouldProcess reports whether the file at path belongs in the
// pipeline. Matching is against the base name only.
func (f *FileFilter) ShouldProcess(path string) bool {
	filename := filepath.Base(path)

	if !scanner.HasExtension(filename, f.extensions) {
		return false
	}

	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, filename); err == nil && matched {
			return false
		}
		// An extension-only pattern like ".tmp" also matches as a suffix.
		if strings.HasPrefix(pattern, ".") && !strings.Contains(pattern, "*") {
			if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(pattern)) {
				return false
			}
		}
	}

	return true
}
