package model

// SortField identifies the record field a table sort orders by
type SortField string

const (
	// SortByName orders by filename
	SortByName SortField = "name"

	// SortByPath orders by full path
	SortByPath SortField = "path"

	// SortByExt orders by extension
	SortByExt SortField = "extension"

	// SortBySize orders by size in bytes
	SortBySize SortField = "size"

	// SortByAccessed orders by last access time
	SortByAccessed SortField = "accessed"
)

// DefaultSortField is the initial table order: least recently accessed first
const DefaultSortField = SortByAccessed

// String returns the string representation of SortField
func (f SortField) String() string {
	return string(f)
}

// IsValid returns true if the field is one of the sortable record fields
func (f SortField) IsValid() bool {
	switch f {
	case SortByName, SortByPath, SortByExt, SortBySize, SortByAccessed:
		return true
	default:
		return false
	}
}

// ParseSortField maps a persisted string back to a SortField, falling back to
// the default for unknown values
func ParseSortField(s string) SortField {
	field := SortField(s)
	if !field.IsValid() {
		return DefaultSortField
	}
	return field
}
