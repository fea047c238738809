// =============================================================================
// SDE Types Converter - JSON Writer Module
// =============================================================================
//
// This module serializes output records and writes them gzip-compressed.
//
// OUTPUT FORMAT:
//   A compact JSON array. Each element has the keys id, name, groupID in that
//   order. Absent locales are omitted from name, never written as null:
//
//   [{"id":100,"name":{"en":"Tritanium"},"groupID":18}]
//
//   The groupID casing is consumed by external tools and must not change.
//
// WRITE STRATEGY:
//   The whole array is encoded in memory first, so encoding errors surface
//   before the destination is touched. The compressed bytes then go to a
//   temp file that is renamed over the destination.
//
// =============================================================================

package jsonwriter

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
	"github.com/ginjaninja78/sde-types-converter/pkg/utils"
)

// =============================================================================
// ENCODING
// =============================================================================

// Encode returns the compact JSON array for records. A nil or empty slice
// encodes as [].
func Encode(records []types.OutputRecord) ([]byte, error) {
	if records == nil {
		records = []types.OutputRecord{}
	}

	data, err := json.MarshalWithOption(records, json.DisableHTMLEscape())
	if err != nil {
		return nil, types.NewError(types.ErrSerialize, "", err)
	}

	return data, nil
}

// =============================================================================
// COMPRESSION
// =============================================================================

// Compress streams data through a gzip writer at the default compression
// level and closes the gzip stream. It does not close w.
func Compress(w io.Writer, data []byte) error {
	gz, err := gzip.NewWriterLevel(w, gzip.DefaultCompression)
	if err != nil {
		return fmt.Errorf("failed to create gzip writer: %w", err)
	}

	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return fmt.Errorf("failed to write compressed data: %w", err)
	}

	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}

	return nil
}

// Write encodes records and writes the gzip-compressed JSON to w.
func Write(w io.Writer, records []types.OutputRecord) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}

	if err := Compress(w, data); err != nil {
		return types.NewError(types.ErrIO, "", err)
	}

	return nil
}

// WriteFile encodes records and writes them gzip-compressed to path,
// replacing any existing file.
//
// PARAMETERS:
//   - path: The destination file.
//   - records: The records to write, in output order.
//
// RETURNS:
//   - The number of uncompressed JSON bytes written.
//   - types.ErrSerialize if encoding fails (the destination is not touched),
//     types.ErrIO if writing fails (the destination is left unchanged).
func WriteFile(path string, records []types.OutputRecord) (int, error) {
	data, err := Encode(records)
	if err != nil {
		return 0, err
	}

	err = utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Compress(w, data)
	})
	if err != nil {
		return 0, types.NewError(types.ErrIO, path, err)
	}

	return len(data), nil
}
