// =============================================================================
// SDE Types Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Atomic file writing (temp file + rename)
//   - Existence and size checks
//
// WRITE STRATEGY:
//   Output is written to a uniquely named temp file in the destination
//   directory, synced, and renamed over the destination. A failed write
//   removes the temp file and leaves any existing destination untouched.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic writes a file by streaming into fill and renaming the result
// into place.
//
// PARAMETERS:
//   - path: The destination path. An existing file is replaced.
//   - fill: Writes the file contents. Returning an error aborts the write.
//
// RETURNS:
//   - An error if the temp file cannot be created, fill fails, or the rename
//     fails. The destination is unchanged in every error case.
func WriteFileAtomic(path string, fill func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmpPath := TempPath(path)

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = fill(file); err != nil {
		return err
	}

	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}

// TempPath returns a unique hidden sibling path for path.
// Example: "out/types.json.gz" -> "out/.types.json.gz.<uuid>.tmp"
func TempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists reports whether a regular file exists at path. Directories and
// stat failures report false.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// GetFileSize returns the size of the file at path in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}
