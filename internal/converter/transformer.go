// =============================================================================
// SDE Types Converter - Transformation Engine
// =============================================================================
//
// This module turns parsed catalog records into output records:
//
//   FILTER:   keep a record if and only if it has a marketGroupID. Any value,
//             including zero or a negative number, counts as present.
//   PROJECT:  id      <- the record key, parsed as a 32-bit signed integer
//             name    <- copied
//             groupID <- copied
//
// Only retained records have their key parsed, so a malformed key on a
// record without a marketGroupID is harmless. A malformed key on a retained
// record aborts the run with types.ErrKeyFormat.
//
// Duplicate ids (e.g. from keys "100" and "0100") are all kept.
//
// =============================================================================

package converter

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
)

// =============================================================================
// TRANSFORMER
// =============================================================================

// Predicate decides whether a source record is exported.
type Predicate func(types.SourceRecord) bool

// HasMarketGroup is the default predicate: the record is sold on the market.
func HasMarketGroup(r types.SourceRecord) bool {
	return r.HasMarketGroup()
}

// Transformer filters and projects source records.
type Transformer struct {
	keep Predicate
}

// NewTransformer creates a Transformer using the HasMarketGroup predicate.
func NewTransformer() *Transformer {
	return newTransformer(HasMarketGroup)
}

func newTransformer(keep Predicate) *Transformer {
	return &Transformer{keep: keep}
}

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// Transform filters and projects every record.
//
// PARAMETERS:
//   - records: The parsed catalog, keyed by mapping key.
//
// RETURNS:
//   - The output records, in ascending source-key order. The result is never
//     nil, so an empty catalog still serializes as an empty array.
//   - A types.ErrKeyFormat error for the first retained record whose key is
//     not an integer.
func (t *Transformer) Transform(records map[string]types.SourceRecord) ([]types.OutputRecord, error) {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]types.OutputRecord, 0, len(records))
	for _, key := range keys {
		rec := records[key]
		if !t.keep(rec) {
			continue
		}

		projected, err := Project(key, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, projected)
	}

	return out, nil
}

// Transform filters and projects records with the default predicate.
func Transform(records map[string]types.SourceRecord) ([]types.OutputRecord, error) {
	return NewTransformer().Transform(records)
}

// Project maps one source record to its output shape.
func Project(key string, rec types.SourceRecord) (types.OutputRecord, error) {
	id, err := ParseID(key)
	if err != nil {
		return types.OutputRecord{}, err
	}

	return types.OutputRecord{
		ID:      id,
		Name:    rec.Name.Clone(),
		GroupID: rec.GroupID,
	}, nil
}

// ParseID parses a record key as a decimal 32-bit signed integer. Surrounding
// whitespace is not tolerated.
func ParseID(key string) (int32, error) {
	id, err := strconv.ParseInt(key, 10, 32)
	if err != nil {
		return 0, types.NewError(types.ErrKeyFormat, fmt.Sprintf("key %q", key), err)
	}
	return int32(id), nil
}

// =============================================================================
// ORDERING
// =============================================================================

// SortByID orders records by ascending id. The sort is stable, so records
// sharing an id keep their relative order.
func SortByID(records []types.OutputRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}
