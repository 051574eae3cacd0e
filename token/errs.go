package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnterminatedComment = errors.New("unterminated comment")
	ErrUnterminatedData    = errors.New("unterminated data")
	ErrBadData             = errors.New("bad data")
	ErrUnexpectedByte      = errors.New("unexpected byte")
	ErrBadEscape           = errors.New("bad escape")
	ErrBadUnicode          = errors.New("bad unicode")
)

// LexError reports a lexing failure at a byte offset.
type LexError struct {
	Err error
	Off int
}

func NewLexError(err error, off int) *LexError {
	return &LexError{Err: err, Off: off}
}

func (e *LexError) Unwrap() error {
	return e.Err
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Err.Error(), e.Off)
}

// EscapeError reports an escape sequence which cannot be decoded.  Off
// is relative to the start of the raw string span.
type EscapeError struct {
	Err error
	Off int
	Seq string
}

func (e *EscapeError) Unwrap() error {
	return e.Err
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("%s %q at offset %d", e.Err.Error(), e.Seq, e.Off)
}
