package output

import (
	"bytes"
	"strings"
	"testing"
)

func newTestOutput(verbose bool) (*Output, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	out := New(Config{
		Verbose:   verbose,
		Writer:    stdout,
		ErrWriter: stderr,
		IsTTY:     false,
	})
	return out, stdout, stderr
}

func TestInfoAlwaysShown(t *testing.T) {
	out, stdout, _ := newTestOutput(false)
	out.Info("tagged %d files", 3)

	if got := stdout.String(); got != "tagged 3 files\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestVerboseSuppressedByDefault(t *testing.T) {
	out, stdout, _ := newTestOutput(false)
	out.Verbose("detail")

	if stdout.Len() != 0 {
		t.Errorf("verbose message leaked: %q", stdout.String())
	}
}

func TestVerboseShownWhenEnabled(t *testing.T) {
	out, stdout, _ := newTestOutput(true)
	out.Verbose("detail")

	if got := stdout.String(); got != "detail\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestSetVerboseEnablesAfterConstruction(t *testing.T) {
	out, stdout, _ := newTestOutput(false)
	out.Verbose("quiet")
	out.SetVerbose(true)
	out.Verbose("loud")

	if got := stdout.String(); got != "loud\n" {
		t.Errorf("stdout = %q", got)
	}
	if !out.IsVerbose() {
		t.Error("IsVerbose should report true after SetVerbose")
	}
}

func TestErrorGoesToStderr(t *testing.T) {
	out, stdout, stderr := newTestOutput(false)
	out.Error("failed: %s", "disk full")

	if stdout.Len() != 0 {
		t.Errorf("error leaked to stdout: %q", stdout.String())
	}
	if got := stderr.String(); got != "failed: disk full\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestNewlineNotDuplicated(t *testing.T) {
	out, stdout, _ := newTestOutput(false)
	out.Info("line\n")

	if got := stdout.String(); got != "line\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestProgressSuppressedWhenNotTTY(t *testing.T) {
	out, stdout, _ := newTestOutput(false)
	out.StartProgress(10)
	out.UpdateProgress(5)
	out.EndProgress()

	if strings.Contains(stdout.String(), "Tagging") {
		t.Errorf("progress drawn without a TTY: %q", stdout.String())
	}
}

func TestProgressDrawnOnTTY(t *testing.T) {
	stdout := &bytes.Buffer{}
	out := New(Config{Writer: stdout, IsTTY: true})

	out.StartProgress(2)
	out.UpdateProgress(1)
	out.EndProgress()

	if !strings.Contains(stdout.String(), "Tagging file 1/2") {
		t.Errorf("progress line missing: %q", stdout.String())
	}
}
