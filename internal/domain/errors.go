package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrExecution       = errors.New("execution error")

	// ErrNonFiniteRace marks a race whose speeds or distances overflowed.
	ErrNonFiniteRace = errors.New("race has non-finite speeds or distances")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidConfig   ErrorKind = "invalid_config"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindExecution       ErrorKind = "execution"
)

// Validation messages. Consumers match on these literally.
const (
	MsgNameNull         = "Name cannot be null."
	MsgNameBlank        = "Name cannot be blank."
	MsgSpeedNegative    = "Speed cannot be negative."
	MsgDistanceNegative = "Distance cannot be negative."
	MsgHorsesNull       = "Horses cannot be null."
	MsgHorsesEmpty      = "Horses cannot be empty."
)

// DomainError is raised by domain constructors. Error returns Msg unchanged.
type DomainError struct {
	Kind  ErrorKind
	Msg   string
	Cause error
}

func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Msg
}

func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func invalidArgument(msg string) error {
	return &DomainError{
		Kind:  KindInvalidArgument,
		Msg:   msg,
		Cause: ErrInvalidArgument,
	}
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
// The outermost classified error wins.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		switch e := err.(type) {
		case *OpError:
			return e.Kind == kind
		case *DomainError:
			return e.Kind == kind
		}
		err = errors.Unwrap(err)
	}
	return false
}
