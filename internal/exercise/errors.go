package exercise

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no document exists for the requested slug.
var ErrNotFound = errors.New("exercise not found")

// ErrEmptySlug indicates a title without any letters, digits, or underscores.
var ErrEmptySlug = errors.New("exercise name must contain letters or digits")

// ErrReservedSlug indicates a title whose slug would collide with index.json.
var ErrReservedSlug = errors.New("exercise name is reserved for the store index")

// ParseError reports a stored document that is not valid JSON or breaks the schema.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
