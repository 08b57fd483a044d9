// Package errz defines the errors raised while compiling for the Seax VM.
//
// Recoverable compile-time failures are returned as values: *CompileError
// for node-specific violations and *UnboundNameError for names that the
// scope chain cannot resolve. Broken preconditions (bad list indexes, bitwise
// operations on floats) are not returned at all; they panic through Fatalf.
package errz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seax-vm/seaxtools/location"
)

// CompileError is a descriptive compile-time failure.
type CompileError struct {
	Message  string
	Location location.Location
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return formatCompileError(e.Message, e.Location)
}

// NewCompileError returns a CompileError without a location.
func NewCompileError(message string) *CompileError {
	return &CompileError{Message: message}
}

// CompileErrorf returns a CompileError with a formatted message.
func CompileErrorf(format string, args ...any) *CompileError {
	return &CompileError{Message: fmt.Sprintf(format, args...)}
}

// UnboundNameError reports a name that no frame in the scope chain binds.
// Suggestions holds similarly spelled names that were visible at the point
// of reference.
type UnboundNameError struct {
	Name        string
	Suggestions []string
	Location    location.Location
}

// Error implements the error interface.
func (e *UnboundNameError) Error() string {
	msg := fmt.Sprintf("unbound name %q", e.Name) + formatSuggestions(e.Suggestions)
	return formatCompileError(msg, e.Location)
}

// NewUnboundNameError returns an UnboundNameError for name, suggesting the
// closest matches among visible.
func NewUnboundNameError(name string, visible ...string) *UnboundNameError {
	return &UnboundNameError{Name: name, Suggestions: Suggest(name, visible)}
}

// IsUnbound returns true if err is or wraps an *UnboundNameError.
func IsUnbound(err error) bool {
	var unbound *UnboundNameError
	return errors.As(err, &unbound)
}

// AtLocation attaches loc to a compile error that does not have a location
// yet. Errors of other types, and errors already carrying a location, are
// returned unchanged.
func AtLocation(err error, loc location.Location) error {
	switch e := err.(type) {
	case *CompileError:
		if e.Location.IsZero() {
			return &CompileError{Message: e.Message, Location: loc}
		}
	case *UnboundNameError:
		if e.Location.IsZero() {
			return &UnboundNameError{Name: e.Name, Suggestions: e.Suggestions, Location: loc}
		}
	}
	return err
}

func formatCompileError(message string, loc location.Location) string {
	var b strings.Builder
	b.WriteString("compile error: ")
	b.WriteString(message)
	if !loc.IsZero() {
		b.WriteString("\n\nlocation: ")
		b.WriteString(loc.String())
	}
	return b.String()
}
