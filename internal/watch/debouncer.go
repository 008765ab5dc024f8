package watch

import (
	"sync"
	"time"
)

// Change represents a batched file system event under the watched root.
type Change struct {
	Path string
	Op   ChangeOp
}

// ChangeOp represents the type of file system operation.
type ChangeOp int

const (
	OpCreate ChangeOp = iota
	OpWrite
	OpRemove
	OpRename
)

// String returns the operation name for logs
func (op ChangeOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Debouncer collects file system events and emits batched changes after a
// quiet period. Multiple events for the same path within the window are
// collapsed into one, keeping the latest operation.
type Debouncer struct {
	interval time.Duration
	changes  map[string]Change
	mu       sync.Mutex
	timer    *time.Timer
	output   chan []Change
}

// NewDebouncer creates a debouncer with the specified quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		changes:  make(map[string]Change),
		output:   make(chan []Change, 16),
	}
}

// Output returns the channel that receives batched changes.
func (d *Debouncer) Output() <-chan []Change {
	return d.output
}

// Add adds an event to the debounce window. If a change for the same path
// already exists, it is replaced with the latest operation.
func (d *Debouncer) Add(path string, op ChangeOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.changes[path] = Change{Path: path, Op: op}

	// Reset the timer each time a new event arrives
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// flush sends the accumulated changes to the output channel and resets the buffer.
func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.changes) == 0 {
		return
	}

	batch := make([]Change, 0, len(d.changes))
	for _, change := range d.changes {
		batch = append(batch, change)
	}

	d.changes = make(map[string]Change)
	d.output <- batch
}
