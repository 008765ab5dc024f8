package config

import (
	"fyne.io/fyne/v2"

	"github.com/modelsweep/modelsweep/internal/model"
)

// Theme names for the application palette
type ThemeName string

const (
	ThemeLight ThemeName = "light"
	ThemeDark  ThemeName = "dark"
)

// Settings keys for Fyne preferences
const (
	KeyScanRoot        = "scan_root"
	KeyTheme           = "app_theme"
	KeySortField       = "sort_field"
	KeySortAscending   = "sort_ascending"
	KeyDeleteToTrash   = "delete_to_trash"
	KeyOpenAfterExport = "open_after_export"
)

// Default values
const (
	DefaultTheme           = ThemeLight
	DefaultSortAscending   = true
	DefaultDeleteToTrash   = true
	DefaultOpenAfterExport = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetScanRoot returns the last scanned directory, empty until one is chosen
func (s *Settings) GetScanRoot() string {
	return s.app.Preferences().String(KeyScanRoot)
}

// SetScanRoot sets the last scanned directory
func (s *Settings) SetScanRoot(root string) {
	s.app.Preferences().SetString(KeyScanRoot, root)
}

// GetTheme returns the configured theme name
func (s *Settings) GetTheme() ThemeName {
	theme := ThemeName(s.app.Preferences().String(KeyTheme))
	if theme != ThemeLight && theme != ThemeDark {
		s.SetTheme(DefaultTheme)
		return DefaultTheme
	}
	return theme
}

// SetTheme sets the theme name
func (s *Settings) SetTheme(theme ThemeName) {
	s.app.Preferences().SetString(KeyTheme, string(theme))
}

// GetThemeOptions returns available theme options
func (s *Settings) GetThemeOptions() []ThemeName {
	return []ThemeName{ThemeLight, ThemeDark}
}

// GetSortField returns the configured sort column
func (s *Settings) GetSortField() model.SortField {
	field := s.app.Preferences().String(KeySortField)
	if field == "" {
		s.SetSortField(model.DefaultSortField)
		return model.DefaultSortField
	}
	return model.ParseSortField(field)
}

// SetSortField sets the sort column
func (s *Settings) SetSortField(field model.SortField) {
	if !field.IsValid() {
		field = model.DefaultSortField
	}
	s.app.Preferences().SetString(KeySortField, field.String())
}

// GetSortAscending returns the configured sort direction
func (s *Settings) GetSortAscending() bool {
	return s.app.Preferences().BoolWithFallback(KeySortAscending, DefaultSortAscending)
}

// SetSortAscending sets the sort direction
func (s *Settings) SetSortAscending(ascending bool) {
	s.app.Preferences().SetBool(KeySortAscending, ascending)
}

// GetDeleteToTrash returns whether deletes go to the platform trash
func (s *Settings) GetDeleteToTrash() bool {
	return s.app.Preferences().BoolWithFallback(KeyDeleteToTrash, DefaultDeleteToTrash)
}

// SetDeleteToTrash sets whether deletes go to the platform trash
func (s *Settings) SetDeleteToTrash(toTrash bool) {
	s.app.Preferences().SetBool(KeyDeleteToTrash, toTrash)
}

// GetOpenAfterExport returns whether exported workbooks open automatically
func (s *Settings) GetOpenAfterExport() bool {
	return s.app.Preferences().BoolWithFallback(KeyOpenAfterExport, DefaultOpenAfterExport)
}

// SetOpenAfterExport sets whether exported workbooks open automatically
func (s *Settings) SetOpenAfterExport(open bool) {
	s.app.Preferences().SetBool(KeyOpenAfterExport, open)
}
