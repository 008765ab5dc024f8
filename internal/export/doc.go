package export

// Package export writes the visible result rows into an xlsx workbook with
// a fixed column layout, so the triage view can be shared or archived.
