package parse

import (
	"errors"
	"fmt"
)

var ErrParse = errors.New("parse error")

// ParseError reports the token found where something else was expected.
type ParseError struct {
	Off      int
	Expected string
	Got      string
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s at offset %d", ErrParse, e.Expected, e.Got, e.Off)
}
