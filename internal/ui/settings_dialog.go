package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/modelsweep/modelsweep/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onApply  func()

	// UI components
	themeSelect    *widget.Select
	openAfterCheck *widget.Check
}

// NewSettingsDialog creates a new settings dialog. The onApply callback
// runs after a save so the caller can re-apply the theme.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onApply func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onApply:  onApply,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Theme selection
	themeOptions := []string{}
	for _, name := range sd.settings.GetThemeOptions() {
		themeOptions = append(themeOptions, string(name))
	}
	sd.themeSelect = widget.NewSelect(themeOptions, nil)

	// Open workbook after export
	sd.openAfterCheck = widget.NewCheck("Open workbook after export", nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Interface Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Theme:"),
		sd.themeSelect,

		widget.NewSeparator(),
		widget.NewLabel("Export Settings"),
		widget.NewSeparator(),

		sd.openAfterCheck,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(400, 300))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.themeSelect.SetSelected(string(sd.settings.GetTheme()))
	sd.openAfterCheck.SetChecked(sd.settings.GetOpenAfterExport())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.themeSelect.Selected != "" {
		sd.settings.SetTheme(config.ThemeName(sd.themeSelect.Selected))
	}
	sd.settings.SetOpenAfterExport(sd.openAfterCheck.Checked)

	if sd.onApply != nil {
		sd.onApply()
	}
}
