package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound     = "USER001"
	ErrCodeInvalidInput     = "USER002"
	ErrCodeQuestionNotFound = "USER003"
	ErrCodeDuplicateUser    = "USER004"
)

// Errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// UserError custom error type
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewInvalidInputError(err error) *UserError {
	return &UserError{
		Code:    ErrCodeInvalidInput,
		Message: "Invalid user input",
		Err:     err,
	}
}

func NewQuestionNotFoundError(err error) *UserError {
	return &UserError{
		Code:    ErrCodeQuestionNotFound,
		Message: "Question not found",
		Err:     err,
	}
}

func NewDuplicateUserError() *UserError {
	return &UserError{
		Code:    ErrCodeDuplicateUser,
		Message: "User already exists",
		Err:     ErrDuplicateUser,
	}
}
