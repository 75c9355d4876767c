package kpuzzle

import (
	"errors"
	"fmt"
)

// Sentinel errors for the kpuzzle package.
var (
	// Lookup errors
	ErrUnknownMove         = errors.New("kpuzzle: unknown move")
	ErrMissingDefinition   = errors.New("kpuzzle: puzzle definition not found")
	ErrDuplicateDefinition = errors.New("kpuzzle: puzzle definition already registered")

	// Data errors
	ErrMalformedTransformation = errors.New("kpuzzle: malformed transformation")
	ErrMalformedState          = errors.New("kpuzzle: malformed serialized state")
	ErrInvalidDefinition       = errors.New("kpuzzle: invalid puzzle definition")

	// History errors
	ErrNothingToUndo = errors.New("kpuzzle: nothing to undo")
	ErrNothingToRedo = errors.New("kpuzzle: nothing to redo")
)

// UnknownMoveError is returned when a move name is not in a definition's move table.
type UnknownMoveError struct {
	Move string
}

func (e *UnknownMoveError) Error() string {
	return fmt.Sprintf("kpuzzle: unknown move: %s", e.Move)
}

func (e *UnknownMoveError) Unwrap() error {
	return ErrUnknownMove
}

// MalformedTransformationError reports a transformation that does not fit its definition.
type MalformedTransformationError struct {
	Orbit  string
	Reason string
}

func (e *MalformedTransformationError) Error() string {
	if e.Orbit == "" {
		return fmt.Sprintf("kpuzzle: malformed transformation: %s", e.Reason)
	}
	return fmt.Sprintf("kpuzzle: malformed transformation in orbit %q: %s", e.Orbit, e.Reason)
}

func (e *MalformedTransformationError) Unwrap() error {
	return ErrMalformedTransformation
}

// MissingDefinitionError is returned when a registry has no puzzle with the requested name.
type MissingDefinitionError struct {
	Name string
}

func (e *MissingDefinitionError) Error() string {
	return fmt.Sprintf("kpuzzle: puzzle definition not found: %s", e.Name)
}

func (e *MissingDefinitionError) Unwrap() error {
	return ErrMissingDefinition
}
