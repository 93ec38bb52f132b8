// Package errs holds the failure taxonomy shared by the build pipeline.
package errs

import "github.com/pkg/errors"

var (
	// ErrMissingInput reports a declared input file that is absent on disk.
	ErrMissingInput = errors.New("missing input")
	// ErrPath reports a gram directory that is invalid or cannot be created.
	ErrPath = errors.New("invalid project path")
	// ErrSubprocess reports an external tool that could not run or exited non-zero.
	ErrSubprocess = errors.New("subprocess failure")
	// ErrIO reports a report or project file that could not be written.
	ErrIO = errors.New("io failure")
)

// MissingInput wraps ErrMissingInput with the offending path.
func MissingInput(kind, path string) error {
	return errors.Wrapf(ErrMissingInput, "%s file not found: %s", kind, path)
}

// Path wraps ErrPath with a description of what went wrong.
func Path(format string, args ...any) error {
	return errors.Wrapf(ErrPath, format, args...)
}

// Subprocess wraps ErrSubprocess with the command that failed.
func Subprocess(command string, cause error) error {
	if cause == nil {
		return errors.Wrapf(ErrSubprocess, "command exited non-zero: %s", command)
	}
	return errors.Wrapf(ErrSubprocess, "command %s: %v", command, cause)
}

// IO wraps ErrIO around a filesystem error.
func IO(cause error, format string, args ...any) error {
	return errors.Wrapf(ErrIO, format+": %v", append(args, cause)...)
}
