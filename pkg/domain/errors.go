package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTransition is matched by *UnknownTransitionError.
	ErrUnknownTransition = errors.New("unknown transition")

	// ErrGuardEvaluation is matched by *GuardEvaluationError.
	ErrGuardEvaluation = errors.New("guard evaluation failed")

	// ErrResourceNotFound is returned by stores when a resource does not exist.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUnknownKind is returned when a catalog has no registry for a kind.
	ErrUnknownKind = errors.New("unknown resource kind")
)

// UnknownTransitionError reports a transition name with no registry entry.
type UnknownTransitionError struct {
	Kind string
	Name string
}

func (e *UnknownTransitionError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("no transition named '%s' is declared", e.Name)
	}
	return fmt.Sprintf("resource '%s' declares no transition named '%s'", e.Kind, e.Name)
}

func (e *UnknownTransitionError) Is(target error) bool {
	return target == ErrUnknownTransition
}

// GuardEvaluationError wraps a failure raised by a transition guard.
type GuardEvaluationError struct {
	Kind       string
	Transition string
	Err        error
}

func (e *GuardEvaluationError) Error() string {
	return fmt.Sprintf("guard of transition '%s' on '%s' failed: %v", e.Transition, e.Kind, e.Err)
}

func (e *GuardEvaluationError) Is(target error) bool {
	return target == ErrGuardEvaluation
}

func (e *GuardEvaluationError) Unwrap() error {
	return e.Err
}
