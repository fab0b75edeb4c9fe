// Package method turns the load command's method flags into an ApplyMethod.
package method

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a9sk/displayctl/internal/models"
)

var (
	ErrAmbiguousMethod = errors.New("ambiguous apply method")
	ErrInvalidMethod   = errors.New("invalid apply method")
)

// Selector holds what the user asked for. Number is nil when no numeric
// method was given.
type Selector struct {
	Number     *int
	Verify     bool
	Temporary  bool
	Persistent bool
}

// AmbiguousMethodError is returned when more than one selector is set.
type AmbiguousMethodError struct {
	Selected []string
}

func (e *AmbiguousMethodError) Error() string {
	return fmt.Sprintf("%s: %s given together, choose one", ErrAmbiguousMethod, strings.Join(e.Selected, ", "))
}

func (e *AmbiguousMethodError) Unwrap() error { return ErrAmbiguousMethod }

// InvalidMethodError is returned for a number that is not a wire value.
type InvalidMethodError struct {
	Number int
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("%s %d: expected 0 (verify), 1 (temporary) or 2 (persistent)", ErrInvalidMethod, e.Number)
}

func (e *InvalidMethodError) Unwrap() error { return ErrInvalidMethod }

// Validate resolves sel to exactly one method. With nothing selected the
// method is temporary, so a bad profile is undone on logout.
func Validate(sel Selector) (models.ApplyMethod, error) {
	var selected []string
	result := models.MethodTemporary

	if sel.Verify {
		selected = append(selected, "--verify")
		result = models.MethodVerify
	}
	if sel.Temporary {
		selected = append(selected, "--temporary")
		result = models.MethodTemporary
	}
	if sel.Persistent {
		selected = append(selected, "--persistent")
		result = models.MethodPersistent
	}
	if sel.Number != nil {
		selected = append(selected, fmt.Sprintf("--method %d", *sel.Number))
	}

	if len(selected) > 1 {
		return 0, &AmbiguousMethodError{Selected: selected}
	}

	if sel.Number != nil {
		switch m := models.ApplyMethod(*sel.Number); *sel.Number {
		case int(models.MethodVerify), int(models.MethodTemporary), int(models.MethodPersistent):
			return m, nil
		default:
			return 0, &InvalidMethodError{Number: *sel.Number}
		}
	}

	return result, nil
}
