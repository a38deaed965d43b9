package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/spanrender/internal/configloader"
)

// Exit codes for spanrender.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a command failed for any other reason.
	ExitFailure = 1

	// ExitDropped indicates annotations were dropped (with --strict).
	ExitDropped = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error, such as display nodes
	// that fail verification.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrAnnotationsDropped is returned by render --strict when any
	// annotation did not reach the output.
	ErrAnnotationsDropped = errors.New("annotations dropped")

	// ErrBatchFailed is returned by batch when any file could not be read
	// or decoded.
	ErrBatchFailed = errors.New("some files could not be processed")

	// ErrNoInput is returned when no file is named and stdin is a terminal.
	ErrNoInput = errors.New("no input: name a file or pipe a message on stdin")

	// ErrTiling is returned when --verify finds malformed display nodes.
	ErrTiling = errors.New("display nodes do not tile the text")

	// ErrUsage marks invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrAnnotationsDropped):
		return ExitDropped
	case errors.Is(err, ErrUsage), errors.Is(err, ErrNoInput):
		return ExitInvalidUsage
	case errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, ErrTiling):
		return ExitInternalError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
