package zipreader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
)

// writeZip creates a zip archive in a temp dir. A nil value creates a
// directory entry.
func writeZip(t *testing.T, entries map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sde.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if data != nil {
			_, err = w.Write(data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())

	return path
}

func TestReadEntry(t *testing.T) {
	path := writeZip(t, map[string][]byte{
		"fsd/":               nil,
		"fsd/types.yaml":     []byte("100:\n  groupID: 18\n"),
		"fsd/groups.yaml":    []byte("18: {}\n"),
		"bsd/invNames.yaml":  []byte("- 1\n"),
		"fsd/types.yaml.bak": []byte("stale"),
	})

	text, err := ReadEntry(path, types.DefaultEntryName)
	require.NoError(t, err)
	assert.Equal(t, "100:\n  groupID: 18\n", text)
}

func TestReadEntry_StripsBOM(t *testing.T) {
	path := writeZip(t, map[string][]byte{
		"fsd/types.yaml": []byte("\xef\xbb\xbf100: {}\n"),
	})

	text, err := ReadEntry(path, types.DefaultEntryName)
	require.NoError(t, err)
	assert.Equal(t, "100: {}\n", text)
}

func TestReadEntry_Errors(t *testing.T) {
	dir := t.TempDir()

	notZip := filepath.Join(dir, "not.zip")
	require.NoError(t, os.WriteFile(notZip, []byte("this is not a zip archive"), 0644))

	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantKind error
	}{
		{
			name:     "missing file",
			path:     func(t *testing.T) string { return filepath.Join(dir, "absent.zip") },
			wantKind: types.ErrIO,
		},
		{
			name:     "invalid container",
			path:     func(t *testing.T) string { return notZip },
			wantKind: types.ErrArchive,
		},
		{
			name: "entry absent",
			path: func(t *testing.T) string {
				return writeZip(t, map[string][]byte{"fsd/groups.yaml": []byte("{}")})
			},
			wantKind: types.ErrEntryNotFound,
		},
		{
			name: "entry is a directory",
			path: func(t *testing.T) string {
				return writeZip(t, map[string][]byte{"fsd/types.yaml/": nil})
			},
			wantKind: types.ErrEntryNotFound,
		},
		{
			name: "invalid utf-8",
			path: func(t *testing.T) string {
				return writeZip(t, map[string][]byte{"fsd/types.yaml": {'a', 0xff, 0xfe, 'b'}})
			},
			wantKind: types.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEntry(tt.path(t), types.DefaultEntryName)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestArchive_Names(t *testing.T) {
	path := writeZip(t, map[string][]byte{
		"fsd/types.yaml":  []byte("{}"),
		"fsd/groups.yaml": []byte("{}"),
	})

	archive, err := Open(path)
	require.NoError(t, err)
	defer archive.Close()

	assert.Equal(t, []string{"fsd/groups.yaml", "fsd/types.yaml"}, archive.Names())
}

func TestDecodeUTF8(t *testing.T) {
	text, err := decodeUTF8("x", []byte("\uFEFFgroupID: 18 # Тританий"))
	require.NoError(t, err)
	assert.Equal(t, "groupID: 18 # Тританий", text)

	_, err = decodeUTF8("x", []byte{0xc3, 0x28})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrDecode))
}
