// =============================================================================
// SDE Types Converter - Shared Types
// =============================================================================
//
// This package contains the data model shared by every stage of the pipeline,
// kept here to avoid import cycles. Types defined here are used by:
//   - yamlparser  (produces SourceRecord)
//   - converter   (projects SourceRecord into OutputRecord)
//   - jsonwriter  (serializes OutputRecord)
//   - xlsxreport  (tabulates OutputRecord)
//
// =============================================================================

package types

// DefaultEntryName is the archive entry holding the type catalog.
const DefaultEntryName = "fsd/types.yaml"

// =============================================================================
// LOCALIZED NAME
// =============================================================================

// LocaleCodes lists the supported locale codes in canonical order.
var LocaleCodes = []string{"de", "en", "es", "fr", "ja", "ko", "ru", "zh"}

// LocalizedName is the per-locale translation bundle attached to a type.
//
// A nil field means no translation is available for that locale. An empty
// string is a present value and is serialized as such.
type LocalizedName struct {
	DE *string `yaml:"de" json:"de,omitempty"`
	EN *string `yaml:"en" json:"en,omitempty"`
	ES *string `yaml:"es" json:"es,omitempty"`
	FR *string `yaml:"fr" json:"fr,omitempty"`
	JA *string `yaml:"ja" json:"ja,omitempty"`
	KO *string `yaml:"ko" json:"ko,omitempty"`
	RU *string `yaml:"ru" json:"ru,omitempty"`
	ZH *string `yaml:"zh" json:"zh,omitempty"`
}

// field returns the pointer slot for a locale code, or nil for unknown codes.
func (n *LocalizedName) field(code string) **string {
	switch code {
	case "de":
		return &n.DE
	case "en":
		return &n.EN
	case "es":
		return &n.ES
	case "fr":
		return &n.FR
	case "ja":
		return &n.JA
	case "ko":
		return &n.KO
	case "ru":
		return &n.RU
	case "zh":
		return &n.ZH
	}
	return nil
}

// Get returns the translation for code and whether it is present.
func (n LocalizedName) Get(code string) (string, bool) {
	slot := n.field(code)
	if slot == nil || *slot == nil {
		return "", false
	}
	return **slot, true
}

// Locales returns the codes of the present translations in canonical order.
func (n LocalizedName) Locales() []string {
	var codes []string
	for _, code := range LocaleCodes {
		if _, ok := n.Get(code); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// Clone returns a deep copy so the projected record shares no pointers with
// its source.
func (n LocalizedName) Clone() LocalizedName {
	values := make(map[string]string, len(LocaleCodes))
	for _, code := range n.Locales() {
		values[code], _ = n.Get(code)
	}
	return NewLocalizedName(values)
}

// NewLocalizedName builds a LocalizedName from a code -> text map. Unknown
// codes are ignored.
func NewLocalizedName(values map[string]string) LocalizedName {
	var out LocalizedName
	for code, v := range values {
		if slot := out.field(code); slot != nil {
			s := v
			*slot = &s
		}
	}
	return out
}

// =============================================================================
// RECORDS
// =============================================================================

// SourceRecord is one decoded entry of the input mapping, prior to filtering.
type SourceRecord struct {
	// Key is the mapping key as it appears in the document. It is expected
	// to parse as a signed integer but is only checked for retained records.
	Key string

	// Name is the localized display name.
	Name LocalizedName

	// GroupID is the item group the type belongs to.
	GroupID int32

	// MarketGroupID is nil when the document has no marketGroupID for the
	// record. Presence, not value, decides whether the record is exported.
	MarketGroupID *int32
}

// HasMarketGroup reports whether the record carries a marketGroupID.
func (r SourceRecord) HasMarketGroup() bool {
	return r.MarketGroupID != nil
}

// OutputRecord is the projection written to the JSON output. Field order and
// the groupID casing are part of the output contract.
type OutputRecord struct {
	ID      int32         `json:"id"`
	Name    LocalizedName `json:"name"`
	GroupID int32         `json:"groupID"`
}
