// Package copier handles metadata-preserving file copies for Nametag.
package copier

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyErrorType represents the type of copy error.
type CopyErrorType string

const (
	// SourceNotFound indicates the source file does not exist.
	SourceNotFound CopyErrorType = "SOURCE_NOT_FOUND"
	// DestinationExists indicates a file already exists at the destination.
	DestinationExists CopyErrorType = "DESTINATION_EXISTS"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied CopyErrorType = "PERMISSION_DENIED"
)

// CopyError represents an error that occurred during a file copy.
type CopyError struct {
	Type CopyErrorType
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// Copy copies the source file's bytes to the destination path,
// preserving the source's permission bits and access/modification
// times. The destination's parent directory is created if absent.
// The source is never modified or removed. An existing destination is
// an error rather than an overwrite.
func Copy(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return &CopyError{
				Type: SourceNotFound,
				Path: src,
				Err:  err,
			}
		}
		if os.IsPermission(err) {
			return &CopyError{
				Type: PermissionDenied,
				Path: src,
				Err:  err,
			}
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		if os.IsPermission(err) {
			return &CopyError{
				Type: PermissionDenied,
				Path: filepath.Dir(dst),
				Err:  err,
			}
		}
		return err
	}

	if _, err := os.Stat(dst); err == nil {
		return &CopyError{
			Type: DestinationExists,
			Path: dst,
		}
	}

	in, err := os.Open(src)
	if err != nil {
		if os.IsPermission(err) {
			return &CopyError{
				Type: PermissionDenied,
				Path: src,
				Err:  err,
			}
		}
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		if os.IsExist(err) {
			return &CopyError{
				Type: DestinationExists,
				Path: dst,
				Err:  err,
			}
		}
		if os.IsPermission(err) {
			return &CopyError{
				Type: PermissionDenied,
				Path: dst,
				Err:  err,
			}
		}
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	// Carry over timestamps the way a copy2-style tool would; failure
	// to set them is not worth failing the copy.
	modTime := srcInfo.ModTime()
	_ = os.Chtimes(dst, modTime, modTime)

	return nil
}
