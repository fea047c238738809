// =============================================================================
// SDE Types Converter - YAML Parser Module
// =============================================================================
//
// This module parses the type catalog document. The document root is the
// catalog itself: a mapping from type id to record, with no wrapper key.
//
//   587:
//     groupID: 25
//     marketGroupID: 61
//     mass: 1067000.0          # unknown keys are ignored
//     name:
//       de: Rifter
//       en: Rifter
//
// FIELD RULES:
//   - name           required (mapping of locale code -> text)
//   - groupID        required (32-bit integer)
//   - marketGroupID  optional; missing or null means absent
//
// Integer fields only accept integer scalars. A float such as 18.5 is a
// schema error, never a truncated value.
//
// ERRORS:
//   - YAML syntax errors                     -> types.ErrParse
//   - Wrong shapes (e.g. groupID: abc)       -> types.ErrSchema
//   - Missing required fields                -> types.ErrSchema
//
// =============================================================================

package yamlparser

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
	"github.com/ginjaninja78/sde-types-converter/internal/validation"
)

// rawRecord mirrors one catalog entry. Pointers distinguish missing or null
// fields from zero values.
type rawRecord struct {
	Name          *types.LocalizedName `yaml:"name"`
	GroupID       *intField            `yaml:"groupID"`
	MarketGroupID *intField            `yaml:"marketGroupID"`
}

// intField is a 32-bit integer field that refuses non-integer scalars.
// yaml.v3 would otherwise truncate 18.5 to 18.
type intField int32

// UnmarshalYAML implements yaml.Unmarshaler. Failures are reported as
// *yaml.TypeError so they surface as schema errors.
func (f *intField) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot unmarshal %s `%s` into int32", node.Line, node.ShortTag(), node.Value),
		}}
	}

	var v int32
	if err := node.Decode(&v); err != nil {
		return err
	}
	*f = intField(v)
	return nil
}

// value returns the field as *int32, nil if absent.
func (f *intField) value() *int32 {
	if f == nil {
		return nil
	}
	v := int32(*f)
	return &v
}

// present reports whether a required field was decoded.
func (r rawRecord) present(field string) bool {
	switch field {
	case "name":
		return r.Name != nil
	case "groupID":
		return r.GroupID != nil
	}
	return false
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse decodes the catalog document into source records keyed by their
// mapping key.
//
// PARAMETERS:
//   - text: The UTF-8 document text.
//
// RETURNS:
//   - The records, keyed by the verbatim mapping key. An empty document
//     yields an empty map.
//   - A classified types.ConversionError on failure.
func Parse(text string) (map[string]types.SourceRecord, error) {
	var raw map[string]rawRecord
	if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, types.NewError(types.ErrSchema, "document does not match the record shape", err)
		}
		return nil, types.NewError(types.ErrParse, "", err)
	}

	records := make(map[string]types.SourceRecord, len(raw))

	// Validate in key order so the reported record is stable across runs.
	for _, key := range sortedKeys(raw) {
		r := raw[key]
		if err := validation.ValidateRecord(key, r.present); err != nil {
			return nil, err
		}

		records[key] = types.SourceRecord{
			Key:           key,
			Name:          *r.Name,
			GroupID:       int32(*r.GroupID),
			MarketGroupID: r.MarketGroupID.value(),
		}
	}

	return records, nil
}

func sortedKeys(m map[string]rawRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
