package core

import (
	"io/fs"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError(
		&InvalidFieldError{Field: "age", Reason: "age must be between 0 and 120"},
		&InvalidFieldError{Field: "email", Reason: "invalid email format"},
	)
	assert.EqualError(t, err, "age: age must be between 0 and 120; email: invalid email format")

	var fe *InvalidFieldError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "age", fe.Field)
}

func TestMalformedRecordError(t *testing.T) {
	err := &MalformedRecordError{Collection: "students", Index: 2, Err: ErrDuplicateID}
	assert.EqualError(t, err, "students[2]: identifier already in use")
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestIOError(t *testing.T) {
	err := NewIOError("read", "school_data.json", fs.ErrNotExist)
	assert.EqualError(t, err, "read school_data.json: file does not exist")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Ann Lee", CleanString("  Ann Lee \t"))
	assert.Equal(t, "ann lee", CleanString(" Ann Lee ", true))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Introduction", "INTRO"))
	assert.True(t, ContainsFold("Algebra", ""))
	assert.False(t, ContainsFold("Algebra", "geo"))
}
