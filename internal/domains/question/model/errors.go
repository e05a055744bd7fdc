package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeQuestionNotFound = "QUES001"
	ErrCodeInvalidInput     = "QUES002"
)

// Errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionError custom error type
type QuestionError struct {
	Code    string
	Message string
	Err     error
}

func (e *QuestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *QuestionError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewQuestionNotFoundError() *QuestionError {
	return &QuestionError{
		Code:    ErrCodeQuestionNotFound,
		Message: "Question not found",
		Err:     ErrQuestionNotFound,
	}
}

func NewInvalidInputError(err error) *QuestionError {
	return &QuestionError{
		Code:    ErrCodeInvalidInput,
		Message: "Invalid question input",
		Err:     err,
	}
}
