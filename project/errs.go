package project

import (
	"errors"
	"fmt"
)

var (
	ErrNoPath        = errors.New("project has no file path")
	ErrInvalid       = errors.New("invalid project")
	ErrNotFound      = errors.New("no such record")
	ErrWrongKind     = errors.New("wrong record kind")
	ErrNotBuildPhase = errors.New("not a build phase kind")
	ErrExists        = errors.New("already exists")
	ErrQuery         = errors.New("query error")
	ErrPatch         = errors.New("patch error")
)

// OperationError reports a mutation which was refused.  The project is
// unchanged when one is returned.
type OperationError struct {
	Op  string
	ID  string
	Err error
}

func (e *OperationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.ID, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opErr(op, id string, err error, format string, args ...any) error {
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]any{err}, args...)...)
	}
	return &OperationError{Op: op, ID: id, Err: err}
}
