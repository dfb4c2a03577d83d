package lattice

import (
	"errors"
	"fmt"
)

// Precondition violations. They indicate a bug in the caller, not a transient
// condition, and are only reported when checks are enabled.
var (
	// ErrNotOccupied is returned when an operation requires an occupied coordinate.
	ErrNotOccupied = errors.New("coordinate not occupied")

	// ErrDuplicateOccupant is returned when an identifier is bound twice at one coordinate.
	ErrDuplicateOccupant = errors.New("occupant already present at coordinate")

	// ErrOccupantNotFound is returned when releasing an identifier that is not at the coordinate.
	ErrOccupantNotFound = errors.New("occupant not present at coordinate")

	// ErrLengthMismatch is returned when the slices of a batch move differ in length.
	ErrLengthMismatch = errors.New("batch length mismatch")
)

// CoordError records the operation and site of a precondition violation.
//
// The underlying sentinel can be matched with errors.Is.
type CoordError[C comparable] struct {
	Op    string
	Coord C
	ID    ID
	// HasID reports whether ID is meaningful for Op.
	HasID bool
	Err   error
}

func (e *CoordError[C]) Error() string {
	if e.HasID {
		return fmt.Sprintf("%s %v at %v: %v", e.Op, e.ID, e.Coord, e.Err)
	}
	return fmt.Sprintf("%s %v: %v", e.Op, e.Coord, e.Err)
}

func (e *CoordError[C]) Unwrap() error { return e.Err }

// LengthMismatchError indicates that a batch argument does not match the
// length of the source coordinates.
type LengthMismatchError struct {
	Name     string
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: %s has length %d, expected %d", ErrLengthMismatch, e.Name, e.Actual, e.Expected)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

func coordErr[C comparable](op string, c C, err error) error {
	return &CoordError[C]{Op: op, Coord: c, Err: err}
}

func occupantErr[C comparable](op string, id ID, c C, err error) error {
	return &CoordError[C]{Op: op, Coord: c, ID: id, HasID: true, Err: err}
}

func checkLen(name string, expected, actual int) error {
	if expected != actual {
		return &LengthMismatchError{Name: name, Expected: expected, Actual: actual}
	}
	return nil
}
