// Package main provides the CLI entry point for Nametag.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"nametag/internal/orchestrator"
	"nametag/internal/output"
	"nametag/internal/scanner"
	"nametag/internal/watcher"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: nametag <config-file>")
		os.Exit(1)
	}

	configPath := os.Args[1]

	out := output.New(output.DefaultConfig())

	orch, err := orchestrator.New(configPath, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer orch.Close()

	summary, err := orch.RunBatch()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Print warnings (e.g. missing input directory)
	for _, warning := range summary.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", warning)
	}

	// Print individual file errors
	for _, result := range summary.Results {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "Error copying %s: %v\n", result.SourceName, result.Err)
		}
	}

	// Print summary
	fmt.Println(summary.PrintSummary())

	if cfg := orch.Config(); cfg.Watch != nil {
		if err := runWatchMode(orch, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if summary.HasErrors() {
		os.Exit(1)
	}
}

// runWatchMode keeps the process running after the initial batch,
// tagging new files as they appear in the input directory, until
// interrupted.
func runWatchMode(orch *orchestrator.Orchestrator, out *output.Output) error {
	cfg := orch.Config()

	w := watcher.New(&watcher.Config{
		DebounceSeconds: cfg.Watch.DebounceSeconds,
		Extensions:      cfg.Extensions,
		IgnorePatterns:  cfg.Watch.IgnorePatterns,
	}, func(path string) (bool, error) {
		entry, err := fileEntry(path)
		if err != nil {
			return false, err
		}
		result := orch.ProcessFile(entry)
		if result.Err != nil {
			out.Error("Error copying %s: %v", result.SourceName, result.Err)
			return false, result.Err
		}
		if result.Matched() {
			out.Info("[%s] %s", result.Identifier, result.SourceName)
		} else {
			out.Info("[%s] %s (fragment: %s)", result.Identifier, result.SourceName, result.Fragment)
		}
		return result.Matched(), nil
	})

	if err := w.Start(cfg.InputDirectory); err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}
	out.Info("Watching %s (Ctrl-C to stop)", cfg.InputDirectory)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	session := w.Stop()
	out.Info("Watch session: %d tagged, %d unknown, %d skipped in %s",
		session.FilesTagged, session.FilesUnknown, session.FilesSkipped,
		session.Duration.Round(time.Second))

	return nil
}

// fileEntry builds a scanner.FileEntry for a watched path.
func fileEntry(path string) (scanner.FileEntry, error) {
	if _, err := os.Stat(path); err != nil {
		return scanner.FileEntry{}, err
	}
	return scanner.FileEntry{
		Name:     filepath.Base(path),
		FullPath: path,
	}, nil
}
