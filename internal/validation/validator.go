// =============================================================================
// SDE Types Converter - Validation Engine
// =============================================================================
//
// This module validates decoded catalog records before they are transformed.
//
// VALIDATION STRATEGY:
//   1. Record-level: every record must carry a name and a groupID. A missing
//      required field is fatal (types.ErrSchema).
//   2. Document-level: exported ids should be unique. Duplicates are reported
//      to the caller as warnings and never dropped.
//
// =============================================================================

package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
)

// =============================================================================
// RECORD VALIDATION
// =============================================================================

// RequiredFields lists the record fields that must be present, in the order
// they are reported.
var RequiredFields = []string{"name", "groupID"}

// ValidateRecord checks that a decoded record has all required fields.
//
// PARAMETERS:
//   - key: The mapping key of the record (for error reporting).
//   - present: Reports whether a named field was present and non-null.
//
// RETURNS:
//   - A types.ErrSchema error naming every missing field, or nil.
func ValidateRecord(key string, present func(field string) bool) error {
	var missing []string
	for _, field := range RequiredFields {
		if !present(field) {
			missing = append(missing, field)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return types.NewError(
		types.ErrSchema,
		fmt.Sprintf("record %q", key),
		fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", ")),
	)
}

// =============================================================================
// DOCUMENT VALIDATION
// =============================================================================

// Duplicate describes an id produced by more than one record.
type Duplicate struct {
	ID    int32
	Count int
}

// FindDuplicateIDs returns every id that appears more than once, sorted by id.
func FindDuplicateIDs(records []types.OutputRecord) []Duplicate {
	counts := make(map[int32]int, len(records))
	for _, r := range records {
		counts[r.ID]++
	}

	var dups []Duplicate
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, Duplicate{ID: id, Count: n})
		}
	}

	sort.Slice(dups, func(i, j int) bool { return dups[i].ID < dups[j].ID })
	return dups
}
