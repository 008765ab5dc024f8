package trash

import "errors"

// ErrUnsupported indicates no trash facility is reachable for the file
var ErrUnsupported = errors.New("trash facility unavailable")
