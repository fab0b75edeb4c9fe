package profile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrNotFound       = errors.New("profile not found")
)

// InvalidProfileError lists every invariant a stored document violates.
type InvalidProfileError struct {
	Name     string
	Problems []string
}

func (e *InvalidProfileError) Error() string {
	name := e.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s %s: %s", ErrInvalidProfile, name, strings.Join(e.Problems, "; "))
}

func (e *InvalidProfileError) Unwrap() error { return ErrInvalidProfile }

// NotFoundError is returned by Load and Delete for unknown names.
type NotFoundError struct {
	Name string
	Dir  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration '%s' not found in %s", e.Name, e.Dir)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
