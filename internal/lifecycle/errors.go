package lifecycle

import "errors"

// Validation errors block the write entirely; nothing is persisted when
// one is returned.
var (
	ErrTitleRequired    = errors.New("title is required")
	ErrTypeRequired     = errors.New("type is required")
	ErrDeadlineRequired = errors.New("deadline is required for a planned application")
)

// ErrInvalidTransition is returned when an operation is invoked on an
// application whose current status does not allow it. Approved and
// rejected are terminal.
var ErrInvalidTransition = errors.New("invalid status transition")
