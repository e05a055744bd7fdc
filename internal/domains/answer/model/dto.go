package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// ANSWER REQUEST DTOs
// ========================================

// CreateAnswerRequest carries a new answer from the form layer.
type CreateAnswerRequest struct {
	Content    string    `json:"content" binding:"required"`
	AuthorID   uuid.UUID `json:"author_id" binding:"required"`
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Path       string    `json:"path"`
}

func (r CreateAnswerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(20, 0).Error("content must be at least 20 characters"),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("author is required"),
			validation.By(notNilUUID),
		),
		validation.Field(&r.QuestionID,
			validation.Required.Error("question is required"),
			validation.By(notNilUUID),
		),
	)
}

// VoteRequest is shared by the up/downvote endpoints, mirroring the question
// vote toggle.
type VoteRequest struct {
	UserID       uuid.UUID `json:"user_id" binding:"required"`
	HasUpvoted   bool      `json:"has_upvoted"`
	HasDownvoted bool      `json:"has_downvoted"`
	Path         string    `json:"path"`
}

func (r VoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID,
			validation.Required.Error("user is required"),
			validation.By(notNilUUID),
		),
	)
}

// ListAnswersRequest drives the answer listing under a question.
type ListAnswersRequest struct {
	SortBy   string `form:"sort_by"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (r ListAnswersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SortBy,
			validation.In(SortHighestUpvotes, SortLowestUpvotes, SortRecent, SortOld, "").
				Error("unknown sort"),
		),
	)
}

// AnswerListResponse pairs a page of answers with the isNext flag.
type AnswerListResponse struct {
	Answers []*AnswerSummary `json:"answers"`
	IsNext  bool             `json:"is_next"`
}

func notNilUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_uuid", "must be a valid id")
	}
	return nil
}
