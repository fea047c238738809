// =============================================================================
// SDE Types Converter - Zip Reader Module
// =============================================================================
//
// This module is responsible for pulling the type catalog out of the SDE zip
// archive. The archive is opened read-only, the entry is located by exact
// name, and its contents are returned as validated UTF-8 text.
//
// FAILURE CLASSES:
//   - The file cannot be opened or stat'ed   -> types.ErrIO
//   - The file is not a valid zip container  -> types.ErrArchive
//   - The entry is absent or is a directory  -> types.ErrEntryNotFound
//   - The entry data is corrupt              -> types.ErrArchive
//   - The entry is not valid UTF-8           -> types.ErrDecode
//
// The catalog is small enough to hold in memory, so the entry is read in one
// piece instead of being streamed.
//
// =============================================================================

package zipreader

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
)

// utf8BOM is stripped from the start of entry text.
const utf8BOM = "\ufeff"

// =============================================================================
// ARCHIVE
// =============================================================================

// Archive is an open zip archive on disk.
type Archive struct {
	// Path is the filesystem path the archive was opened from.
	Path string

	file   *os.File
	reader *zip.Reader
}

// Open opens the zip archive at path.
//
// PARAMETERS:
//   - path: The path to the zip archive.
//
// RETURNS:
//   - The open Archive. The caller must Close it.
//   - types.ErrIO if the file cannot be opened, types.ErrArchive if it is not
//     a zip container.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, types.NewError(types.ErrIO, path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, types.NewError(types.ErrIO, path, err)
	}

	reader, err := zip.NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, types.NewError(types.ErrArchive, path, err)
	}

	return &Archive{Path: path, file: file, reader: reader}, nil
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.file.Close()
}

// Names returns the names of all entries in the archive, sorted.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.reader.File))
	for _, f := range a.reader.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// Entry looks up a regular file entry by exact name.
//
// A directory entry with the same name (with or without a trailing slash) is
// a hard failure, not a skip.
func (a *Archive) Entry(name string) (*zip.File, error) {
	for _, f := range a.reader.File {
		switch f.Name {
		case name:
			if f.FileInfo().IsDir() {
				return nil, types.NewError(types.ErrEntryNotFound, name, fmt.Errorf("entry is a directory"))
			}
			return f, nil
		case name + "/":
			return nil, types.NewError(types.ErrEntryNotFound, name, fmt.Errorf("entry is a directory"))
		}
	}

	return nil, types.NewError(types.ErrEntryNotFound, fmt.Sprintf("%s in %s", name, a.Path), nil)
}

// ReadText reads the named entry in full and returns it as UTF-8 text.
func (a *Archive) ReadText(name string) (string, error) {
	f, err := a.Entry(name)
	if err != nil {
		return "", err
	}

	rc, err := f.Open()
	if err != nil {
		return "", types.NewError(types.ErrArchive, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", types.NewError(types.ErrArchive, name, err)
	}

	return decodeUTF8(name, data)
}

// =============================================================================
// CONVENIENCE
// =============================================================================

// ReadEntry opens the archive at path, reads the named entry as UTF-8 text,
// and closes the archive.
//
// PARAMETERS:
//   - path: The path to the zip archive.
//   - entry: The exact entry name, e.g. types.DefaultEntryName.
//
// RETURNS:
//   - The entry text.
//   - A classified types.ConversionError on failure.
func ReadEntry(path, entry string) (string, error) {
	archive, err := Open(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	return archive.ReadText(entry)
}

// decodeUTF8 rejects invalid UTF-8 and drops a leading byte order mark.
func decodeUTF8(name string, data []byte) (string, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return "", types.NewError(types.ErrDecode, name, err)
	}

	return strings.TrimPrefix(string(data), utf8BOM), nil
}
