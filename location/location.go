// Package location annotates values with positions in source code.
package location

import "fmt"

// Location represents a position within a source file.
type Location struct {
	Line int
	Col  int
}

// New returns the location at the given line and column.
func New(line, col int) Location {
	return Location{Line: line, Col: col}
}

// Absolute returns the column added to the line. This is not a byte offset
// into the file; callers comparing locations across lines must not rely on it.
func (l Location) Absolute() int {
	return l.Col + l.Line
}

// IsZero returns true if the location has not been set.
func (l Location) IsZero() bool {
	return l.Line == 0 && l.Col == 0
}

// String returns a formatted string representation of the location.
func (l Location) String() string {
	return fmt.Sprintf("line %d, column %d", l.Line, l.Col)
}

// At pairs a value with the location it was found at.
type At[T any] struct {
	Location Location
	Value    T
}

// NewAt annotates value with loc.
func NewAt[T any](value T, loc Location) At[T] {
	return At[T]{Location: loc, Value: value}
}

// Get returns the wrapped value.
func (a At[T]) Get() T {
	return a.Value
}

func (a At[T]) String() string {
	return fmt.Sprintf("%v at %s", a.Value, a.Location)
}
