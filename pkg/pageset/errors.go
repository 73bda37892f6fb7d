package pageset

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the library. Callers match them with
// errors.Is; OpError adds the failing operation and slot index.
var (
	// ErrOutOfRange indicates a slot index outside the valid range of a set.
	ErrOutOfRange = errors.New("slot index out of range")

	// ErrDanglingReference indicates a slot that points at a source document
	// that is no longer loaded, or at a page beyond its current page count.
	ErrDanglingReference = errors.New("dangling page reference")

	// ErrMalformedDocument indicates input bytes the document library
	// cannot parse.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrUnsupportedOperation indicates a permanent limitation, e.g.
	// requesting encrypted output. Retrying cannot succeed.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrEmptySet indicates an export attempt on a set with no slots.
	ErrEmptySet = errors.New("page set is empty")

	// ErrExportBusy indicates a mutation or second export while an export
	// is already in flight for the same editor.
	ErrExportBusy = errors.New("export in flight")
)

// OpError wraps a sentinel error with the operation that failed and,
// when page-specific, the slot index involved.
type OpError struct {
	Op   string // operation that failed, e.g. "delete", "realize"
	Slot int    // slot index involved, -1 if not slot-specific
	Err  error
}

func (e *OpError) Error() string {
	if e.Slot >= 0 {
		return fmt.Sprintf("pageset: %s slot %d: %v", e.Op, e.Slot, e.Err)
	}
	return fmt.Sprintf("pageset: %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op string, slot int, err error) error {
	return &OpError{Op: op, Slot: slot, Err: err}
}
