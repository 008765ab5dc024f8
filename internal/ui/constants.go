package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings  = "⚙"
	IconFolder    = "📁"
	IconChecked   = "☑"
	IconUnchecked = "☐"
	IconSortAsc   = "▲"
	IconSortDesc  = "▼"
	IconWarning   = "⚠"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing (results grid)
const (
	SelectColWidth   float32 = 36
	NameColWidth     float32 = 220
	PathColWidth     float32 = 360
	ExtColWidth      float32 = 110
	SizeColWidth     float32 = 90
	AccessedColWidth float32 = 160
)

// Failure dialog behavior
const (
	MaxFailureLines = 10
)

// Export defaults
const (
	DefaultExportFilename = "models.xlsx"
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
