package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeTagNotFound  = "TAG001"
	ErrCodeUserNotFound = "TAG002"
	ErrCodeInvalidInput = "TAG003"
)

// Errors
var (
	ErrTagNotFound  = errors.New("tag not found")
	ErrUserNotFound = errors.New("user not found")
)

// TagError custom error type
type TagError struct {
	Code    string
	Message string
	Err     error
}

func (e *TagError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TagError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewTagNotFoundError() *TagError {
	return &TagError{
		Code:    ErrCodeTagNotFound,
		Message: "Tag not found",
		Err:     ErrTagNotFound,
	}
}

func NewUserNotFoundError() *TagError {
	return &TagError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewInvalidInputError(err error) *TagError {
	return &TagError{
		Code:    ErrCodeInvalidInput,
		Message: "Invalid tag input",
		Err:     err,
	}
}
