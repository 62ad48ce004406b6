// Package failure classifies I/O and structural errors into the kinds the
// CLI reports to the user. Failures abort the requested command and are
// never retried.
package failure

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"reis/internal/codec"
)

// Kind identifies the class of a Failure.
type Kind int

const (
	Default Kind = iota
	CorruptedDatabase
	DatabaseNotFound
	DatabaseTooLarge
	InvalidDatabaseName
	InvalidInput
	InvalidPlatformOperation
	PermissionDenied
	OutOfSpace
	UnknownActionRequested
	InvalidActionArguments
)

var kindNames = map[Kind]string{
	Default:                  "default",
	CorruptedDatabase:        "corrupted-database",
	DatabaseNotFound:         "database-not-found",
	DatabaseTooLarge:         "database-too-large",
	InvalidDatabaseName:      "invalid-database-name",
	InvalidInput:             "invalid-input",
	InvalidPlatformOperation: "invalid-platform-operation",
	PermissionDenied:         "permission-denied",
	OutOfSpace:               "out-of-space",
	UnknownActionRequested:   "unknown-action",
	InvalidActionArguments:   "invalid-action-arguments",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var messages = map[Kind]string{
	Default:                  "An unexpected error occurred!",
	CorruptedDatabase:        "Invalid data was read from your database! It may be corrupt, or an invalid value was written to it externally!",
	DatabaseNotFound:         "Database has not been created or could not be found!",
	DatabaseTooLarge:         "The database is larger than what is supported!",
	InvalidDatabaseName:      "The database filename is invalid or exceeds the filename length limit!",
	InvalidInput:             "Invalid parameters were passed to the operation!",
	InvalidPlatformOperation: "An operation occurred which is invalid on this platform!",
	PermissionDenied:         "Permission denied while accessing the database!",
	OutOfSpace:               "There is no space left to write the database!",
}

// Failure is an error the user cannot resolve within the current command.
type Failure struct {
	Kind    Kind
	Message string
	// Err is the underlying error, kept for diagnostics.
	Err error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return fmt.Sprintf("%s: %v", f.Message, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// New creates a Failure of the given kind with the default message for that kind.
func New(kind Kind, err error) *Failure {
	return &Failure{Kind: kind, Message: messages[kind], Err: err}
}

// UnknownAction reports an action name that matches no known action.
func UnknownAction(name string) *Failure {
	return &Failure{
		Kind:    UnknownActionRequested,
		Message: fmt.Sprintf("Unknown action requested: %q!", name),
		Err:     fs.ErrInvalid,
	}
}

// InvalidArguments reports that an action is missing its key or value.
func InvalidArguments(action string) *Failure {
	return &Failure{
		Kind:    InvalidActionArguments,
		Message: fmt.Sprintf("Invalid arguments were passed for the %s action!", action),
		Err:     fs.ErrInvalid,
	}
}

// Classify maps err onto a Failure. A *Failure anywhere in the chain is
// returned as is; nil yields nil.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return New(kindOf(err), err)
}

func kindOf(err error) Kind {
	switch {
	case errors.Is(err, codec.ErrCorrupted):
		return CorruptedDatabase
	case errors.Is(err, fs.ErrNotExist):
		return DatabaseNotFound
	case errors.Is(err, syscall.EROFS), errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	case errors.Is(err, syscall.EFBIG):
		return DatabaseTooLarge
	case errors.Is(err, syscall.ENAMETOOLONG):
		return InvalidDatabaseName
	case errors.Is(err, syscall.ENOSPC):
		return OutOfSpace
	case errors.Is(err, errors.ErrUnsupported), errors.Is(err, syscall.ENOTSUP):
		return InvalidPlatformOperation
	case errors.Is(err, fs.ErrInvalid), errors.Is(err, syscall.EINVAL):
		return InvalidInput
	default:
		return Default
	}
}
