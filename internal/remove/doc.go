package remove

// Package remove deletes batches of files, either into the platform trash
// or permanently. Failures are isolated per file and collected into the
// final report so one locked file never aborts a batch.
