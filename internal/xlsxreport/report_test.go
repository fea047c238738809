package xlsxreport

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.xlsx")
	records := []types.OutputRecord{
		{ID: 100, Name: types.NewLocalizedName(map[string]string{"en": "Tritanium", "de": "Tritanium"}), GroupID: 18},
		{ID: 587, Name: types.NewLocalizedName(map[string]string{"zh": "裂谷级"}), GroupID: 25},
	}

	require.NoError(t, Write(path, records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, SheetName, f.GetSheetName(0))

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "groupID", "de", "en", "es", "fr", "ja", "ko", "ru", "zh"}, rows[0])
	assert.Equal(t, []string{"100", "18", "Tritanium", "Tritanium"}, rows[1])
	assert.Equal(t, []string{"587", "25", "", "", "", "", "", "", "", "裂谷级"}, rows[2])
}

func TestWrite_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.xlsx")
	require.NoError(t, Write(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "types.xlsx")

	err := Write(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIO))
}
