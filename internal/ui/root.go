package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/modelsweep/modelsweep/internal/config"
	"github.com/modelsweep/modelsweep/internal/export"
	"github.com/modelsweep/modelsweep/internal/model"
	"github.com/modelsweep/modelsweep/internal/platform"
	"github.com/modelsweep/modelsweep/internal/remove"
	"github.com/modelsweep/modelsweep/internal/results"
	"github.com/modelsweep/modelsweep/internal/scan"
	"github.com/modelsweep/modelsweep/internal/trash"
	"github.com/modelsweep/modelsweep/internal/watch"
)

// OpState enumerates what the UI is currently busy with. Exactly one
// long-running operation may be active at a time; every trigger checks the
// state before starting.
type OpState int

const (
	StateIdle OpState = iota
	StateScanning
	StateDeleting
	StateExporting
)

// String returns the state name for logs
func (s OpState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateDeleting:
		return "deleting"
	case StateExporting:
		return "exporting"
	default:
		return "unknown"
	}
}

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	logger   *zap.Logger
	settings *config.Settings

	scanSvc   *scan.Service
	removeSvc *remove.Service
	exportSvc *export.Service

	table        *results.Table
	resultsTable *ResultsTable

	// Toolbar
	rootEntry   *widget.Entry
	browseBtn   *widget.Button
	scanBtn     *widget.Button
	filterEntry *widget.Entry

	// Selection bar
	selectAllBtn  *widget.Button
	selectNoneBtn *widget.Button
	summaryLabel  *widget.Label

	// Action bar
	deleteBtn  *widget.Button
	exportBtn  *widget.Button
	trashCheck *widget.Check

	// Status bar
	statusLabel *widget.Label
	staleLabel  *widget.Label
	spinner     *widget.ProgressBarInfinite
	progressBar *widget.ProgressBar
	cancelBtn   *widget.Button

	settingsDialog *SettingsDialog

	stateMu sync.Mutex
	state   OpState

	// Grid refresh debouncing while rows stream in
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	watchMu sync.Mutex
	watcher *watch.Watcher
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, logger *zap.Logger, scanSvc *scan.Service, removeSvc *remove.Service, exportSvc *export.Service) *RootUI {
	settings := config.NewSettings(app)

	ui := &RootUI{
		window:    window,
		app:       app,
		logger:    logger,
		settings:  settings,
		scanSvc:   scanSvc,
		removeSvc: removeSvc,
		exportSvc: exportSvc,
		table:     results.NewTable(),
	}

	// Restore the persisted view state before anything renders
	ui.table.SetSort(settings.GetSortField(), settings.GetSortAscending())

	scanSvc.SetRecordCallback(ui.onScanRecord)
	scanSvc.SetProgressCallback(ui.onScanProgress)
	scanSvc.SetDoneCallback(ui.onScanDone)
	removeSvc.SetProgressCallback(ui.onDeleteProgress)
	removeSvc.SetDoneCallback(ui.onDeleteDone)

	ui.setupUI()
	return ui
}

// State returns the current operation state
func (ui *RootUI) State() OpState {
	ui.stateMu.Lock()
	defer ui.stateMu.Unlock()
	return ui.state
}

// setState records the new state and refreshes trigger availability.
// Must run on the UI thread.
func (ui *RootUI) setState(state OpState) {
	ui.stateMu.Lock()
	ui.state = state
	ui.stateMu.Unlock()

	ui.refreshActionState()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Folder row
	ui.rootEntry = widget.NewEntry()
	ui.rootEntry.SetPlaceHolder("Folder to scan for model files")
	if root := ui.settings.GetScanRoot(); root != "" {
		ui.rootEntry.SetText(root)
	}
	// Trigger a scan when the user presses Enter in the folder field
	ui.rootEntry.OnSubmitted = func(string) {
		ui.onScanClick()
	}

	ui.browseBtn = widget.NewButton(IconFolder, ui.onBrowseFolder)
	ui.scanBtn = widget.NewButton("Scan", ui.onScanClick)
	ui.scanBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn,
		container.NewHBox(ui.browseBtn, ui.scanBtn), ui.rootEntry)

	// Filter row
	ui.filterEntry = widget.NewEntry()
	ui.filterEntry.SetPlaceHolder("Filter by name, path or extension")
	ui.filterEntry.OnChanged = ui.onFilterChanged

	// Results grid
	ui.resultsTable = NewResultsTable(ui.table)
	ui.resultsTable.SetCallbacks(ui.onSelectionChanged, ui.onSortChanged)

	// Selection bar
	ui.selectAllBtn = widget.NewButton("Select All", ui.onSelectAll)
	ui.selectNoneBtn = widget.NewButton("Select None", ui.onSelectNone)
	ui.summaryLabel = widget.NewLabel(results.Summary{}.String())
	selectionBar := container.NewHBox(ui.selectAllBtn, ui.selectNoneBtn, ui.summaryLabel)

	// Action bar
	ui.deleteBtn = widget.NewButton("Delete…", ui.onDeleteClick)
	ui.exportBtn = widget.NewButton("Export…", ui.onExportClick)
	ui.trashCheck = widget.NewCheck("Move to trash", ui.onTrashCheckChanged)
	ui.trashCheck.SetChecked(ui.settings.GetDeleteToTrash())
	actionBar := container.NewHBox(ui.deleteBtn, ui.exportBtn, ui.trashCheck)

	// Status bar
	ui.statusLabel = widget.NewLabel("Looks for " + strings.Join(scan.Extensions(), ", ") + " files")
	ui.staleLabel = widget.NewLabel(IconWarning + " Folder changed since last scan")
	ui.staleLabel.Hide()
	ui.spinner = widget.NewProgressBarInfinite()
	ui.spinner.Stop()
	ui.spinner.Hide()
	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Hide()
	ui.cancelBtn = widget.NewButton("Cancel", ui.onCancelClick)
	ui.cancelBtn.Hide()

	statusBar := container.NewBorder(nil, nil,
		container.NewHBox(ui.spinner, ui.statusLabel),
		container.NewHBox(ui.staleLabel, ui.cancelBtn),
		ui.progressBar)

	header := container.NewVBox(topPanel, ui.filterEntry)
	footer := container.NewVBox(
		container.NewBorder(nil, nil, selectionBar, actionBar),
		statusBar,
	)

	content := container.NewBorder(header, footer, nil, nil, ui.resultsTable.Widget())
	ui.window.SetContent(content)

	ui.refreshActionState()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem("Settings", ui.onShowSettings)

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("File", settingsItem),
	)

	ui.window.SetMainMenu(mainMenu)
}

// refreshActionState enables or disables triggers for the current state.
// Must run on the UI thread.
func (ui *RootUI) refreshActionState() {
	state := ui.State()
	busy := state != StateIdle

	setEnabled := func(button *widget.Button, enabled bool) {
		if enabled {
			button.Enable()
		} else {
			button.Disable()
		}
	}

	// The scan button doubles as Stop while a scan runs
	if state == StateScanning {
		ui.scanBtn.SetText("Stop")
		ui.scanBtn.Enable()
	} else {
		ui.scanBtn.SetText("Scan")
		setEnabled(ui.scanBtn, !busy)
	}

	hasRows := ui.table.VisibleLen() > 0
	hasSelection := ui.table.AnySelected()

	setEnabled(ui.browseBtn, !busy)
	setEnabled(ui.selectAllBtn, !busy && hasRows)
	setEnabled(ui.selectNoneBtn, !busy && hasRows)
	setEnabled(ui.deleteBtn, !busy && hasSelection)
	setEnabled(ui.exportBtn, !busy && hasRows)

	if busy {
		ui.trashCheck.Disable()
	} else {
		ui.trashCheck.Enable()
	}

	if state == StateDeleting {
		ui.cancelBtn.Show()
	} else {
		ui.cancelBtn.Hide()
	}
}

// onBrowseFolder handles folder selection for the scan root
func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.rootEntry.SetText(uri.Path())
	}, ui.window)
}

// onScanClick starts a scan, or stops the running one
func (ui *RootUI) onScanClick() {
	if ui.State() == StateScanning {
		ui.logger.Info("scan stop requested")
		ui.scanSvc.Stop()
		return
	}
	if ui.State() != StateIdle {
		return
	}

	root := strings.TrimSpace(ui.rootEntry.Text)
	if root == "" {
		dialog.ShowInformation("Scan", "Choose a folder to scan first.", ui.window)
		return
	}

	ui.stopWatcher()

	// A new scan replaces the previous result set wholesale
	ui.table.Replace(nil)
	ui.resultsTable.Refresh()
	ui.summaryLabel.SetText(results.Summary{}.String())
	ui.staleLabel.Hide()

	if _, err := ui.scanSvc.Start(root); err != nil {
		ui.logger.Warn("scan rejected", zap.String("root", root), zap.Error(err))
		dialog.ShowError(err, ui.window)
		return
	}

	ui.settings.SetScanRoot(root)
	ui.setState(StateScanning)
	ui.statusLabel.SetText("Scanning…")
	ui.spinner.Show()
	ui.spinner.Start()
}

// onScanRecord receives each discovered file on the scan goroutine
func (ui *RootUI) onScanRecord(rec *model.FileRecord) {
	ui.table.Append(rec)
	ui.debouncedGridRefresh()
}

// debouncedGridRefresh drops grid refreshes that arrive too quickly while
// rows stream in
func (ui *RootUI) debouncedGridRefresh() {
	ui.uiUpdateMutex.Lock()
	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		ui.uiUpdateMutex.Unlock()
		return
	}
	ui.lastUIUpdate = now
	ui.uiUpdateMutex.Unlock()

	fyne.Do(func() {
		ui.resultsTable.Refresh()
	})
}

// onScanProgress updates the running counters; throttling happens in the
// scan service
func (ui *RootUI) onScanProgress(examined, found int) {
	fyne.Do(func() {
		ui.statusLabel.SetText(fmt.Sprintf("Scanned %d%sfound %d", examined, MiddleDotSeparator, found))
	})
}

// onScanDone installs the final result set and reports the outcome
func (ui *RootUI) onScanDone(result scan.Result) {
	fyne.Do(func() {
		ui.spinner.Stop()
		ui.spinner.Hide()

		ui.table.Replace(result.Records)
		ui.resultsTable.Refresh()
		ui.summaryLabel.SetText(ui.table.SelectionSummary().String())
		ui.setState(StateIdle)

		switch {
		case result.Err != nil:
			ui.statusLabel.SetText("Scan failed")
			dialog.ShowError(result.Err, ui.window)
		case result.Cancelled:
			ui.statusLabel.SetText(fmt.Sprintf("Scan stopped%sshowing %d files found so far",
				MiddleDotSeparator, len(result.Records)))
		default:
			status := fmt.Sprintf("Found %d model files in %s",
				len(result.Records), result.Elapsed.Round(time.Millisecond))
			if result.Skipped > 0 {
				status += fmt.Sprintf("%s%d entries skipped", MiddleDotSeparator, result.Skipped)
			}
			ui.statusLabel.SetText(status)
		}

		ui.startWatcher(result.Root)
	})
}

// onFilterChanged narrows the visible rows as the user types
func (ui *RootUI) onFilterChanged(text string) {
	ui.table.SetFilter(text)
	ui.resultsTable.Refresh()
	ui.refreshActionState()
}

// onSortChanged persists the active sort so the next launch restores it
func (ui *RootUI) onSortChanged(field model.SortField, ascending bool) {
	ui.settings.SetSortField(field)
	ui.settings.SetSortAscending(ascending)
}

// onSelectionChanged refreshes the summary over the full selection
func (ui *RootUI) onSelectionChanged() {
	ui.summaryLabel.SetText(ui.table.SelectionSummary().String())
	ui.refreshActionState()
}

// onSelectAll selects every visible row
func (ui *RootUI) onSelectAll() {
	count := ui.table.SelectAllVisible()
	ui.logger.Info("select all visible", zap.Int("rows", count))
	ui.resultsTable.Refresh()
	ui.onSelectionChanged()
}

// onSelectNone clears selection on every visible row
func (ui *RootUI) onSelectNone() {
	ui.table.SelectNoneVisible()
	ui.resultsTable.Refresh()
	ui.onSelectionChanged()
}

// onTrashCheckChanged persists the delete mode default
func (ui *RootUI) onTrashCheckChanged(checked bool) {
	ui.settings.SetDeleteToTrash(checked)
}

// onDeleteClick confirms and launches deletion of the selected files
func (ui *RootUI) onDeleteClick() {
	if ui.State() != StateIdle {
		return
	}

	paths := ui.table.SelectedPaths()
	if len(paths) == 0 {
		return
	}

	summary := ui.table.SelectionSummary()
	size := humanize.Bytes(uint64(summary.TotalBytes))

	mode := remove.ModeRecycle
	message := fmt.Sprintf("Move %d file(s) (%s) to the trash?", len(paths), size)
	if !ui.trashCheck.Checked {
		mode = remove.ModePermanent
		message = fmt.Sprintf("Permanently delete %d file(s) (%s)?\nThis cannot be undone.", len(paths), size)
	} else if !trash.Available() {
		message += "\nNo trash facility was detected; recycling may fail."
	}

	confirm := dialog.NewConfirm("Delete files", message, func(confirmed bool) {
		if !confirmed {
			return
		}
		ui.startDelete(paths, mode)
	}, ui.window)
	confirm.SetConfirmText("Delete")
	confirm.SetDismissText("Cancel")
	confirm.Show()
}

// startDelete hands the batch to the delete service and shows progress
func (ui *RootUI) startDelete(paths []string, mode remove.Mode) {
	total := len(paths)
	ui.progressBar.Min = 0
	ui.progressBar.Max = float64(total)
	ui.progressBar.SetValue(0)
	ui.progressBar.TextFormatter = func() string {
		return fmt.Sprintf("%d of %d", int(ui.progressBar.Value), total)
	}
	ui.progressBar.Show()
	ui.statusLabel.SetText("Deleting…")

	if _, err := ui.removeSvc.Start(paths, mode); err != nil {
		ui.progressBar.Hide()
		ui.statusLabel.SetText("")
		dialog.ShowError(err, ui.window)
		return
	}

	ui.setState(StateDeleting)
}

// onDeleteProgress advances the running counter from the delete goroutine
func (ui *RootUI) onDeleteProgress(processed, total int) {
	fyne.Do(func() {
		ui.progressBar.SetValue(float64(processed))
	})
}

// onDeleteDone folds the report back into the table
func (ui *RootUI) onDeleteDone(report remove.Report) {
	fyne.Do(func() {
		ui.progressBar.Hide()

		removed := ui.table.RemovePaths(report.Deleted)
		ui.resultsTable.Refresh()
		ui.summaryLabel.SetText(ui.table.SelectionSummary().String())
		ui.setState(StateIdle)

		status := fmt.Sprintf("Deleted %d file(s)", removed)
		if len(report.Failures) > 0 {
			status += fmt.Sprintf("%s%d failed", MiddleDotSeparator, len(report.Failures))
		}
		if report.Cancelled() {
			status += fmt.Sprintf("%s%d not attempted", MiddleDotSeparator, report.Remaining)
		}
		ui.statusLabel.SetText(status)

		// Failed rows are still in the table and still selected
		if len(report.Failures) > 0 {
			ui.showDeleteFailures(report)
		}
	})
}

// showDeleteFailures lists what could not be deleted, capped to keep the
// dialog readable
func (ui *RootUI) showDeleteFailures(report remove.Report) {
	lines := make([]string, 0, MaxFailureLines+2)
	unsupported := false

	for i, failure := range report.Failures {
		if errors.Is(failure.Err, trash.ErrUnsupported) {
			unsupported = true
		}
		if i < MaxFailureLines {
			lines = append(lines, fmt.Sprintf("%s: %v", failure.Path, failure.Err))
		}
	}
	if extra := len(report.Failures) - MaxFailureLines; extra > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", extra))
	}
	if unsupported {
		lines = append(lines, "",
			"No trash facility is available for some files. Uncheck \"Move to trash\" to delete permanently.")
	}

	label := widget.NewLabel(strings.Join(lines, "\n"))
	label.Wrapping = fyne.TextWrapWord
	dialog.ShowCustom("Delete failures", "Close", label, ui.window)
}

// onCancelClick stops the running delete batch
func (ui *RootUI) onCancelClick() {
	if ui.State() == StateDeleting {
		ui.logger.Info("delete cancel requested")
		ui.removeSvc.Stop()
	}
}

// onExportClick asks for a destination and writes the visible rows
func (ui *RootUI) onExportClick() {
	if ui.State() != StateIdle {
		return
	}

	// The workbook mirrors the grid: filtered rows in their sorted order
	rows := ui.table.Visible()
	if len(rows) == 0 {
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			return // user cancelled
		}
		ui.startExport(rows, writer)
	}, ui.window)
	save.SetFileName(DefaultExportFilename)
	save.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx"}))
	save.Show()
}

// startExport writes the workbook in the background
func (ui *RootUI) startExport(rows []*model.FileRecord, writer fyne.URIWriteCloser) {
	ui.setState(StateExporting)
	ui.statusLabel.SetText("Exporting…")

	go func() {
		path := writer.URI().Path()
		err := ui.exportSvc.Write(rows, writer)
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}

		fyne.Do(func() {
			ui.setState(StateIdle)

			if err != nil {
				ui.statusLabel.SetText("Export failed")
				ui.logger.Error("export failed", zap.String("path", path), zap.Error(err))
				dialog.ShowError(err, ui.window)
				return
			}

			ui.statusLabel.SetText(fmt.Sprintf("Exported %d row(s) to %s", len(rows), path))

			if ui.settings.GetOpenAfterExport() {
				// Best effort: a missing spreadsheet app is not an error
				go func() {
					if openErr := platform.OpenFileWithDefaultApp(path); openErr != nil {
						ui.logger.Warn("could not open exported workbook",
							zap.String("path", path), zap.Error(openErr))
					}
				}()
			} else {
				ui.showExportDone(path, len(rows))
			}
		})
	}()
}

// showExportDone offers to reveal the workbook in the file manager
func (ui *RootUI) showExportDone(path string, rows int) {
	message := fmt.Sprintf("Wrote %d row(s) to:\n%s", rows, path)
	reveal := dialog.NewCustomConfirm("Export complete", "Reveal", "Close",
		widget.NewLabel(message), func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := platform.OpenFileInManager(path); err != nil {
				ui.logger.Warn("could not reveal exported workbook",
					zap.String("path", path), zap.Error(err))
			}
		}, ui.window)
	reveal.Show()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	if ui.settingsDialog == nil {
		ui.settingsDialog = NewSettingsDialog(ui.settings, ui.window, ui.applyTheme)
	}
	ui.settingsDialog.Show()
}

// applyTheme re-applies the configured theme
func (ui *RootUI) applyTheme() {
	ui.app.Settings().SetTheme(ThemeForName(ui.settings.GetTheme()))
}

// startWatcher begins watching the scanned root so the UI can flag results
// as stale
func (ui *RootUI) startWatcher(root string) {
	if root == "" {
		return
	}

	watcher, err := watch.NewWatcher(root, scan.RecognizedPath, ui.logger)
	if err != nil {
		ui.logger.Warn("could not watch scan root", zap.String("root", root), zap.Error(err))
		return
	}

	ui.watchMu.Lock()
	previous := ui.watcher
	ui.watcher = watcher
	ui.watchMu.Unlock()
	if previous != nil {
		previous.Close()
	}

	go watcher.Start()
	go func() {
		for {
			select {
			case batch := <-watcher.Events():
				ui.logger.Info("scan root changed",
					zap.String("root", root), zap.Int("changes", len(batch)))
				fyne.Do(func() {
					ui.staleLabel.Show()
				})
			case <-watcher.Done():
				return
			}
		}
	}()
}

// stopWatcher releases the current watcher, if any
func (ui *RootUI) stopWatcher() {
	ui.watchMu.Lock()
	watcher := ui.watcher
	ui.watcher = nil
	ui.watchMu.Unlock()

	if watcher != nil {
		watcher.Close()
	}
}
