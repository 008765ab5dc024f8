package watch

// Package watch flags scan results as stale by watching the scanned root
// for relevant file changes. Change batches are advisory; nothing rescans
// automatically.
