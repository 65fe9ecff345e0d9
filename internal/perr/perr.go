// Package perr defines the error kinds used across the polycube engine
// (spec.md section 7). Each kind is a sentinel error; Wrap attaches one
// to an underlying error (itself usually produced by
// github.com/pkg/errors so it carries a stack) so callers can classify
// failures with errors.Is(err, perr.ArchiveCorrupt) and so on, while the
// error message still carries the underlying cause.
package perr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error kinds.
var (
	// InvalidArgument covers n < 0, an out-of-range grid dimension, or a
	// malformed archive header field.
	InvalidArgument = errors.New("invalid argument")
	// ArchiveCorrupt covers a bad magic, a truncated record, or an
	// unknown orientation/compression enum value.
	ArchiveCorrupt = errors.New("archive corrupt")
	// IOFailure covers a read/write failure on a cache or archive file.
	IOFailure = errors.New("i/o failure")
	// WorkerFailure carries the first failure raised by any dispatcher
	// worker.
	WorkerFailure = errors.New("worker failure")
	// ResourceExhausted covers an allocation failure; implementation
	// defined and may be unrecoverable.
	ResourceExhausted = errors.New("resource exhausted")
)

// Wrap tags err with kind, preserving err's message and (if present)
// its pkg/errors stack trace. errors.Is(Wrap(kind, err), kind) is true.
func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string { return fmt.Sprintf("%s: %s", e.kind, e.err) }
func (e *kindError) Unwrap() error { return e.kind }

// Cause returns the underlying error that was wrapped, for callers that
// want the original message or stack rather than the kind.
func (e *kindError) Cause() error { return e.err }
