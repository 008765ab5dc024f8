package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/modelsweep/modelsweep/internal/model"
	"github.com/modelsweep/modelsweep/internal/results"
)

// Column indexes of the results grid
const (
	colSelect = iota
	colName
	colPath
	colExt
	colSize
	colAccessed
	columnCount
)

// headerTitles holds the grid header labels, in column order
var headerTitles = [columnCount]string{"", "Name", "Path", "Extension", "Size", "Last Access"}

// sortFieldForColumn maps a grid column to its sort field. The checkbox
// column is not sortable.
func sortFieldForColumn(col int) (model.SortField, bool) {
	switch col {
	case colName:
		return model.SortByName, true
	case colPath:
		return model.SortByPath, true
	case colExt:
		return model.SortByExt, true
	case colSize:
		return model.SortBySize, true
	case colAccessed:
		return model.SortByAccessed, true
	default:
		return "", false
	}
}

// ResultsTable renders the scan results as a grid with tappable sort
// headers and a checkbox column. It reads rows straight from the shared
// results table, so a Refresh after any data change is enough.
type ResultsTable struct {
	data *results.Table
	grid *widget.Table

	onSelectionChanged func()
	onSortChanged      func(field model.SortField, ascending bool)
}

// NewResultsTable creates the grid bound to the given result set
func NewResultsTable(data *results.Table) *ResultsTable {
	rt := &ResultsTable{data: data}

	rt.grid = widget.NewTable(
		func() (int, int) {
			return rt.data.VisibleLen(), columnCount
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("template")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			rt.updateCell(id, obj)
		},
	)

	rt.grid.ShowHeaderRow = true
	rt.grid.CreateHeader = func() fyne.CanvasObject {
		button := widget.NewButton("", nil)
		button.Importance = widget.LowImportance
		return button
	}
	rt.grid.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		rt.updateHeader(id, obj)
	}
	rt.grid.OnSelected = func(id widget.TableCellID) {
		rt.onCellTapped(id)
	}

	rt.grid.SetColumnWidth(colSelect, SelectColWidth)
	rt.grid.SetColumnWidth(colName, NameColWidth)
	rt.grid.SetColumnWidth(colPath, PathColWidth)
	rt.grid.SetColumnWidth(colExt, ExtColWidth)
	rt.grid.SetColumnWidth(colSize, SizeColWidth)
	rt.grid.SetColumnWidth(colAccessed, AccessedColWidth)

	return rt
}

// SetCallbacks wires the selection and sort change notifications
func (rt *ResultsTable) SetCallbacks(onSelectionChanged func(), onSortChanged func(field model.SortField, ascending bool)) {
	rt.onSelectionChanged = onSelectionChanged
	rt.onSortChanged = onSortChanged
}

// Widget returns the grid as a canvas object for layout
func (rt *ResultsTable) Widget() fyne.CanvasObject {
	return rt.grid
}

// Refresh redraws the grid from the current result set
func (rt *ResultsTable) Refresh() {
	rt.grid.Refresh()
}

// updateCell renders one data cell
func (rt *ResultsTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label, ok := obj.(*widget.Label)
	if !ok {
		return
	}

	rec, ok := rt.data.VisibleAt(id.Row)
	if !ok {
		// Row vanished between the length callback and this update
		label.SetText(DashPlaceholder)
		return
	}

	label.Alignment = fyne.TextAlignLeading
	switch id.Col {
	case colSelect:
		label.Alignment = fyne.TextAlignCenter
		if rec.Selected {
			label.SetText(IconChecked)
		} else {
			label.SetText(IconUnchecked)
		}
	case colName:
		label.SetText(rec.Name)
	case colPath:
		label.SetText(rec.Path)
	case colExt:
		label.SetText(rec.Ext)
	case colSize:
		label.Alignment = fyne.TextAlignTrailing
		label.SetText(rec.FormatSize())
	case colAccessed:
		label.SetText(rec.FormatAccessedAt())
	}
}

// updateHeader renders one header button with the active sort indicator
func (rt *ResultsTable) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	button, ok := obj.(*widget.Button)
	if !ok {
		return
	}

	title := headerTitles[id.Col]
	field, sortable := sortFieldForColumn(id.Col)
	if !sortable {
		button.OnTapped = nil
		button.Disable()
		button.SetText(title)
		return
	}

	if active, ascending := rt.data.Sort(); active == field {
		if ascending {
			title += " " + IconSortAsc
		} else {
			title += " " + IconSortDesc
		}
	}

	button.Enable()
	button.OnTapped = func() {
		rt.onHeaderTapped(field)
	}
	button.SetText(title)
}

// onHeaderTapped toggles the sort on the tapped column
func (rt *ResultsTable) onHeaderTapped(field model.SortField) {
	rt.data.ToggleSort(field)
	rt.grid.Refresh()

	if rt.onSortChanged != nil {
		active, ascending := rt.data.Sort()
		rt.onSortChanged(active, ascending)
	}
}

// onCellTapped toggles row selection when the checkbox column is tapped
func (rt *ResultsTable) onCellTapped(id widget.TableCellID) {
	// The grid is a view, not a picker: drop the cell highlight right away
	defer rt.grid.UnselectAll()

	if id.Col != colSelect {
		return
	}

	rec, ok := rt.data.VisibleAt(id.Row)
	if !ok {
		return
	}

	rt.data.ToggleSelect(rec.Path)
	rt.grid.Refresh()

	if rt.onSelectionChanged != nil {
		rt.onSelectionChanged()
	}
}
