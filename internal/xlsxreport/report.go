// =============================================================================
// SDE Types Converter - XLSX Report Module
// =============================================================================
//
// This module writes an optional review workbook listing every exported
// record, so the export can be checked in a spreadsheet without unpacking
// the gzip output.
//
// WORKBOOK LAYOUT (single sheet "types"):
//
//   | id  | groupID | de        | en        | es | fr | ja | ko | ru | zh |
//   |-----|---------|-----------|-----------|----|----|----|----|----|----|
//   | 100 | 18      | Tritanium | Tritanium |    |    |    |    |    |    |
//
// Absent translations are left as empty cells. Rows follow the output order.
//
// =============================================================================

package xlsxreport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
	"github.com/ginjaninja78/sde-types-converter/pkg/utils"
)

// SheetName is the name of the report sheet.
const SheetName = "types"

// Header returns the header row: id, groupID, then one column per locale.
func Header() []string {
	return append([]string{"id", "groupID"}, types.LocaleCodes...)
}

// Build creates the workbook in memory. The caller must Close it.
func Build(records []types.OutputRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(types.LocaleCodes)+2)
	for _, h := range Header() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}

		row := recordRow(rec)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row for id %d: %w", rec.ID, err)
		}
	}

	// Keep the header visible while scrolling.
	err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	return f, nil
}

func recordRow(rec types.OutputRecord) []interface{} {
	row := make([]interface{}, 0, len(types.LocaleCodes)+2)
	row = append(row, rec.ID, rec.GroupID)
	for _, code := range types.LocaleCodes {
		v, _ := rec.Name.Get(code)
		row = append(row, v)
	}
	return row
}

// Write builds the workbook and writes it to path, replacing any existing
// file. Failures are reported as types.ErrIO.
func Write(path string, records []types.OutputRecord) error {
	f, err := Build(records)
	if err != nil {
		return types.NewError(types.ErrIO, path, err)
	}
	defer f.Close()

	err = utils.WriteFileAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
	if err != nil {
		return types.NewError(types.ErrIO, path, err)
	}

	return nil
}
