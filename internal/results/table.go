package results

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/modelsweep/modelsweep/internal/model"
)

// Summary describes the current selection over the full record set,
// regardless of the active filter
type Summary struct {
	Count      int
	TotalBytes int64
}

// String formats the summary for the status bar
func (s Summary) String() string {
	if s.Count == 0 {
		return "No files selected"
	}

	noun := "files"
	if s.Count == 1 {
		noun = "file"
	}
	return fmt.Sprintf("Selected: %d %s, %s", s.Count, noun, humanize.Bytes(uint64(s.TotalBytes)))
}

// Table holds one scan's records together with the active sort, filter, and
// selection state. Records keep their scan-arrival order internally; Visible
// returns the filtered rows in the sorted order. Selection lives on the
// records, so it survives sorting and filtering and is cleared only when a
// fresh scan replaces the set. All methods are safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	records []*model.FileRecord // scan-arrival order
	visible []*model.FileRecord // filtered + sorted view
	byPath  map[string]*model.FileRecord

	sortField model.SortField
	ascending bool
	filter    string
}

// NewTable creates an empty table with the default order: least recently
// accessed first
func NewTable() *Table {
	return &Table{
		byPath:    make(map[string]*model.FileRecord),
		sortField: model.DefaultSortField,
		ascending: true,
	}
}

// Replace installs a finished scan's records, discarding the previous set
// and with it any selection. Sort and filter settings are kept.
func (t *Table) Replace(records []*model.FileRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = records
	t.byPath = make(map[string]*model.FileRecord, len(records))
	for _, rec := range records {
		t.byPath[rec.Path] = rec
	}
	t.rebuildVisible()
}

// Append adds a record streamed by a running scan. Arrival order is kept;
// the active sort is applied on the next Resort or Replace. Paths are unique
// within a scan, so no duplicate check is made.
func (t *Table) Append(rec *model.FileRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = append(t.records, rec)
	t.byPath[rec.Path] = rec
	if rec.MatchesFilter(t.filter) {
		t.visible = append(t.visible, rec)
	}
}

// Resort reapplies the active sort and filter to the current records
func (t *Table) Resort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rebuildVisible()
}

// Len returns the full record count
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// VisibleLen returns the number of rows remaining after the filter
func (t *Table) VisibleLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.visible)
}

// Visible returns a snapshot of the filtered rows in sorted order
func (t *Table) Visible() []*model.FileRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	visible := make([]*model.FileRecord, len(t.visible))
	copy(visible, t.visible)
	return visible
}

// VisibleAt returns the visible row at index i, or false when out of range
func (t *Table) VisibleAt(i int) (*model.FileRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i < 0 || i >= len(t.visible) {
		return nil, false
	}
	return t.visible[i], true
}

// SetSort orders the visible rows by the given field and direction
func (t *Table) SetSort(field model.SortField, ascending bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sortField = field
	t.ascending = ascending
	t.rebuildVisible()
}

// ToggleSort sorts by the given field, flipping the direction when the field
// is already active and starting ascending otherwise
func (t *Table) ToggleSort(field model.SortField) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sortField == field {
		t.ascending = !t.ascending
	} else {
		t.sortField = field
		t.ascending = true
	}
	t.rebuildVisible()
}

// Sort returns the active sort field and direction
func (t *Table) Sort() (model.SortField, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortField, t.ascending
}

// SetFilter restricts visible rows to those matching the case-insensitive
// substring across path, name, and extension. An empty filter shows all rows.
func (t *Table) SetFilter(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.filter = text
	t.rebuildVisible()
}

// Filter returns the active filter string
func (t *Table) Filter() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.filter
}

// ToggleSelect flips the selection of the record at path and returns the new
// state. Unknown paths report false.
func (t *Table) ToggleSelect(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, exists := t.byPath[path]
	if !exists {
		return false
	}
	rec.Selected = !rec.Selected
	return rec.Selected
}

// SelectAllVisible marks every currently visible row selected, leaving rows
// hidden by the filter untouched. Returns the number of visible rows.
func (t *Table) SelectAllVisible() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, rec := range t.visible {
		rec.Selected = true
	}
	return len(t.visible)
}

// SelectNoneVisible clears the selection of every currently visible row,
// leaving rows hidden by the filter untouched. Returns the number of visible
// rows.
func (t *Table) SelectNoneVisible() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, rec := range t.visible {
		rec.Selected = false
	}
	return len(t.visible)
}

// AnySelected reports whether any record in the full set is selected
func (t *Table) AnySelected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, rec := range t.records {
		if rec.Selected {
			return true
		}
	}
	return false
}

// SelectionSummary counts selected records and their total size over the
// full set, regardless of the active filter
func (t *Table) SelectionSummary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var summary Summary
	for _, rec := range t.records {
		if rec.Selected {
			summary.Count++
			summary.TotalBytes += rec.SizeBytes
		}
	}
	return summary
}

// SelectedPaths returns the paths of all selected records in scan order
func (t *Table) SelectedPaths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var paths []string
	for _, rec := range t.records {
		if rec.Selected {
			paths = append(paths, rec.Path)
		}
	}
	return paths
}

// RemovePaths drops the given paths from the record set, keeping the
// selection state of the remaining rows. Returns the number removed.
func (t *Table) RemovePaths(paths []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	drop := make(map[string]bool, len(paths))
	for _, path := range paths {
		drop[path] = true
	}

	kept := make([]*model.FileRecord, 0, len(t.records))
	removed := 0
	for _, rec := range t.records {
		if drop[rec.Path] {
			delete(t.byPath, rec.Path)
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	t.records = kept
	t.rebuildVisible()
	return removed
}

// rebuildVisible recomputes the filtered, sorted view from the scan-ordered
// records. Callers must hold the write lock.
func (t *Table) rebuildVisible() {
	visible := make([]*model.FileRecord, 0, len(t.records))
	for _, rec := range t.records {
		if rec.MatchesFilter(t.filter) {
			visible = append(visible, rec)
		}
	}
	t.sortRows(visible)
	t.visible = visible
}

// sortRows stable-sorts rows by the active field so equal keys keep their
// scan-arrival order. Rebuilding from arrival order on every change makes
// direction toggles idempotent.
func (t *Table) sortRows(rows []*model.FileRecord) {
	field := t.sortField
	ascending := t.ascending

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !ascending {
			a, b = b, a
		}
		switch field {
		case model.SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case model.SortByPath:
			return strings.ToLower(a.Path) < strings.ToLower(b.Path)
		case model.SortByExt:
			return a.Ext < b.Ext
		case model.SortBySize:
			return a.SizeBytes < b.SizeBytes
		case model.SortByAccessed:
			return a.AccessedAt.Before(b.AccessedAt)
		default:
			return false
		}
	})
}
