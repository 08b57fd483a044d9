package errz

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Errors accumulates the compile errors of several independent subtrees.
// The zero value is ready to use.
type Errors struct {
	merr *multierror.Error
}

// Add records err. Nil errors are ignored.
func (e *Errors) Add(err error) {
	if err == nil {
		return
	}
	e.merr = multierror.Append(e.merr, err)
	e.merr.ErrorFormat = formatErrors
}

// Len returns the number of recorded errors.
func (e *Errors) Len() int {
	if e.merr == nil {
		return 0
	}
	return len(e.merr.Errors)
}

// Errors returns the recorded errors in the order they were added.
func (e *Errors) Errors() []error {
	if e.merr == nil {
		return nil
	}
	return e.merr.Errors
}

// ErrorOrNil returns nil if no errors were recorded, the single error if
// exactly one was, and the aggregate otherwise.
func (e *Errors) ErrorOrNil() error {
	switch e.Len() {
	case 0:
		return nil
	case 1:
		return e.merr.Errors[0]
	default:
		return e.merr
	}
}

func formatErrors(errs []error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d compile errors:", len(errs))
	for _, err := range errs {
		b.WriteString("\n\t* ")
		b.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n\t  "))
	}
	return b.String()
}
