package model

// Package model defines domain data structures shared across the app: scanned
// file records and the sort fields the result table understands. Records are
// immutable snapshots apart from the Selected flag; a rescan replaces them
// wholesale rather than mutating in place.
