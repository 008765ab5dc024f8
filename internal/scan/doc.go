package scan

// Package scan implements the filesystem scanner: a recursive walk over a
// root directory that streams one record per model file to registered
// callbacks. Unreadable entries are counted and skipped rather than aborting
// the walk; cancellation stops promptly and still delivers partial results.
