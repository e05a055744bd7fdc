package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeAnswerNotFound   = "ANS001"
	ErrCodeQuestionNotFound = "ANS002"
	ErrCodeInvalidInput     = "ANS003"
)

// Errors
var (
	ErrAnswerNotFound = errors.New("answer not found")
)

// AnswerError custom error type
type AnswerError struct {
	Code    string
	Message string
	Err     error
}

func (e *AnswerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AnswerError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewAnswerNotFoundError() *AnswerError {
	return &AnswerError{
		Code:    ErrCodeAnswerNotFound,
		Message: "Answer not found",
		Err:     ErrAnswerNotFound,
	}
}

func NewQuestionNotFoundError(err error) *AnswerError {
	return &AnswerError{
		Code:    ErrCodeQuestionNotFound,
		Message: "Question not found",
		Err:     err,
	}
}

func NewInvalidInputError(err error) *AnswerError {
	return &AnswerError{
		Code:    ErrCodeInvalidInput,
		Message: "Invalid answer input",
		Err:     err,
	}
}
