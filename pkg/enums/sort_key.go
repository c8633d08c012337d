package enums

import "strings"

// SortKey selects the ordering applied by the catalog pipeline.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

var validSortKeys = []SortKey{
	SortDefault,
	SortNameAsc,
	SortNameDesc,
	SortPriceAsc,
	SortPriceDesc,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey maps raw input onto a SortKey. Unknown values fall back to
// SortDefault, which keeps catalog order.
func ParseSortKey(value string) SortKey {
	normalized := SortKey(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized
	}
	return SortDefault
}
