package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateID   = errors.New("identifier already in use")
	ErrMalformedData = errors.New("malformed data")
)

// InvalidFieldError is used to indicate an error with a specific field.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (err *InvalidFieldError) Error() string {
	return err.Field + ": " + err.Reason
}

// ValidationError holds every InvalidFieldError raised while building a single value.
type ValidationError struct {
	Fields []*InvalidFieldError
}

func NewValidationError(flds ...*InvalidFieldError) error {
	return &ValidationError{Fields: flds}
}

func (err *ValidationError) Error() string {
	msgs := make([]string, 0, len(err.Fields))
	for _, fe := range err.Fields {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the first failing field to errors.As.
func (err *ValidationError) Unwrap() error {
	if len(err.Fields) == 0 {
		return nil
	}
	return err.Fields[0]
}

// Field returns the error reported for field, if any.
func (err *ValidationError) Field(field string) (*InvalidFieldError, bool) {
	for _, fe := range err.Fields {
		if fe.Field == field {
			return fe, true
		}
	}
	return nil, false
}

// MalformedRecordError reports a persisted record that could not be rebuilt.
// Index is the record's position in its collection.
type MalformedRecordError struct {
	Collection string
	Index      int
	Err        error
}

func (err *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", err.Collection, err.Index, err.Err)
}

func (err *MalformedRecordError) Unwrap() error { return err.Err }

// IOError wraps a failed file operation so callers can report the path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

func (err *IOError) Error() string {
	return err.Op + " " + err.Path + ": " + err.Err.Error()
}

func (err *IOError) Unwrap() error { return err.Err }
