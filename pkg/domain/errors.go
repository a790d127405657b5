package domain

import (
	"errors"
	"fmt"
)

// Sentinel causes. A *CommandError unwraps to exactly one of these so callers
// can branch with errors.Is while still showing the full message to users.
var (
	// ErrMalformedTree is returned when a syntax tree contains an error node.
	ErrMalformedTree = errors.New("malformed syntax tree")

	// ErrAmbiguousCommand is returned when a name resolves to more than one command.
	ErrAmbiguousCommand = errors.New("ambiguous command")

	// ErrUnknownCommand is returned when a group has nothing to resolve a name against.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrExpectedName is returned when a group is executed without a sub-command name.
	ErrExpectedName = errors.New("expected a name")

	// ErrNotEnoughArguments is returned when a function cannot bind its required parameters.
	ErrNotEnoughArguments = errors.New("not enough arguments")

	// ErrTypeConversion is returned when an argument cannot be converted to a parameter type.
	ErrTypeConversion = errors.New("type conversion failed")

	// ErrNoApplicableResult is returned when none of the accepted result types can be produced.
	ErrNoApplicableResult = errors.New("no applicable result type")

	// ErrIndexOutOfRange is returned for argument or result access outside [0, Len).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnexpectedResult is returned when a caller receives a result shape it cannot use.
	ErrUnexpectedResult = errors.New("unexpected result type")

	// ErrDuplicateCommand is returned when registering a name that already exists in a group.
	ErrDuplicateCommand = errors.New("duplicate command")

	// ErrCommandNotFound is returned when removing a command that is not registered.
	ErrCommandNotFound = errors.New("command not found")

	// ErrPermissionDenied is returned by commands that require admin rights.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSessionNotFound is returned when a session ID cannot be found in the store.
	ErrSessionNotFound = errors.New("session not found")
)

// CommandError is the single error kind produced by the command core.
// Message is meant to be shown to the end user verbatim.
type CommandError struct {
	Kind    error
	Message string
}

// NewCommandError builds a CommandError with a formatted message.
func NewCommandError(kind error, format string, args ...any) *CommandError {
	return &CommandError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Kind
}
