package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNotReady     = errors.New("model not trained")
)

// PredictionError provides structured error information for pipeline operations.
type PredictionError struct {
	Op     string // Operation that failed (e.g., "Neighbors", "Train")
	Entity string // Entity type (e.g., "node", "pair", "dataset")
	Detail string // Additional context
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *PredictionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *PredictionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *PredictionError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// Convenience constructors for the three failure kinds

// NotFoundError creates an error for a node absent from the graph.
func NotFoundError(op string, id NodeID) error {
	return &PredictionError{
		Op:     op,
		Entity: "node",
		Detail: fmt.Sprintf("id %d", id),
		Cause:  ErrNotFound,
	}
}

// InvalidInputError creates an error for a caller-supplied value that violates a contract.
func InvalidInputError(op, entity, detail string) error {
	return &PredictionError{
		Op:     op,
		Entity: entity,
		Detail: detail,
		Cause:  ErrInvalidInput,
	}
}

// NotReadyError creates an error for an operation invoked before the model is trained.
func NotReadyError(op string) error {
	return &PredictionError{
		Op:     op,
		Entity: "model",
		Cause:  ErrNotReady,
	}
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput returns true if the error is an invalid input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotReady returns true if the error indicates an untrained model.
func IsNotReady(err error) bool {
	return errors.Is(err, ErrNotReady)
}
