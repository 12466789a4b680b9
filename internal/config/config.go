// Package config handles configuration loading and validation for Nametag.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nametag/internal/renamer"
	"nametag/internal/scanner"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidJSON     ConfigErrorType = "INVALID_JSON"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidJSON:
		return fmt.Sprintf("invalid JSON in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	DebounceSeconds int      `json:"debounceSeconds,omitempty"`
	IgnorePatterns  []string `json:"ignorePatterns,omitempty"`
}

// AuditConfig holds operation-log settings.
type AuditConfig struct {
	LogDirectory string `json:"logDirectory,omitempty"`
	Disabled     bool   `json:"disabled,omitempty"`
}

// Configuration holds all settings for Nametag.
type Configuration struct {
	InputDirectory   string       `json:"inputDirectory"`
	OutputDirectory  string       `json:"outputDirectory"`
	ReferenceTable   string       `json:"referenceTable"`
	Extensions       []string     `json:"extensions,omitempty"`
	MaxFilenameBytes int          `json:"maxFilenameBytes,omitempty"`
	Verbose          bool         `json:"verbose,omitempty"`
	DryRun           bool         `json:"dryRun,omitempty"`
	Watch            *WatchConfig `json:"watch,omitempty"`
	Audit            *AuditConfig `json:"audit,omitempty"`
}

// minFilenameBytes is the smallest workable truncation budget: the
// hash suffix, its separator, and a realistic extension must always fit.
const minFilenameBytes = 32

// hashSuffixBytes is the underscore plus eight hex digits that
// truncation inserts before the extension.
const hashSuffixBytes = 9

// Validate checks that the configuration has all required fields.
func (c *Configuration) Validate() error {
	if c.InputDirectory == "" {
		return &ConfigError{
			Type:    ValidationError,
			Message: "inputDirectory must not be empty",
		}
	}
	if c.OutputDirectory == "" {
		return &ConfigError{
			Type:    ValidationError,
			Message: "outputDirectory must not be empty",
		}
	}
	if c.ReferenceTable == "" {
		return &ConfigError{
			Type:    ValidationError,
			Message: "referenceTable must not be empty",
		}
	}
	if c.MaxFilenameBytes != 0 && c.MaxFilenameBytes < minFilenameBytes {
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("maxFilenameBytes must be at least %d", minFilenameBytes),
		}
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("extensions[%d] %q must start with a dot", i, ext),
			}
		}
		// The budget must hold the hash suffix and the extension or
		// truncation has no room left for the name itself.
		if c.MaxFilenameBytes != 0 && c.MaxFilenameBytes < hashSuffixBytes+len(ext) {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("maxFilenameBytes %d cannot fit the hash suffix and extension %q", c.MaxFilenameBytes, ext),
			}
		}
	}
	if c.Watch != nil && c.Watch.DebounceSeconds < 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "watch.debounceSeconds must not be negative",
		}
	}
	return nil
}

// ApplyDefaults fills in zero-value fields with their defaults.
func (c *Configuration) ApplyDefaults() {
	if len(c.Extensions) == 0 {
		c.Extensions = scanner.DefaultExtensions()
	}
	if c.MaxFilenameBytes == 0 {
		c.MaxFilenameBytes = renamer.DefaultMaxBytes
	}
	if c.Watch != nil && c.Watch.DebounceSeconds == 0 {
		c.Watch.DebounceSeconds = 2
	}
	if c.Audit == nil {
		c.Audit = &AuditConfig{}
	}
	if c.Audit.LogDirectory == "" {
		c.Audit.LogDirectory = filepath.Join(c.OutputDirectory, ".nametag-log")
	}
}

// Load reads and parses a configuration file from the given path.
func Load(filePath string) (*Configuration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{
				Type: FileNotFound,
				Path: filePath,
			}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	return &config, nil
}
