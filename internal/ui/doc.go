package ui

// Package ui contains the Fyne-based desktop user interface. It wires user
// interactions to the scan, delete and export services and renders the
// results grid, selection summary and progress.
