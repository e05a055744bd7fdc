package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// QUESTION REQUEST DTOs
// ========================================

// CreateQuestionRequest carries a new question from the form layer.
type CreateQuestionRequest struct {
	Title    string    `json:"title" binding:"required"`
	Content  string    `json:"content" binding:"required"`
	Tags     []string  `json:"tags" binding:"required"`
	AuthorID uuid.UUID `json:"author_id" binding:"required"`
	Path     string    `json:"path"`
}

func (r CreateQuestionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(5, 130).Error("title must be 5-130 characters"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(20, 0).Error("content must be at least 20 characters"),
		),
		validation.Field(&r.Tags,
			validation.Required.Error("at least one tag is required"),
			validation.Length(1, 3).Error("a question carries 1 to 3 tags"),
			validation.Each(validation.Required, validation.Length(1, 30)),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("author is required"),
			validation.By(notNilUUID),
		),
	)
}

// EditQuestionRequest overwrites title and content; the tag list is not
// mutated by edits.
type EditQuestionRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Path    string `json:"path"`
}

func (r EditQuestionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(5, 130).Error("title must be 5-130 characters"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(20, 0).Error("content must be at least 20 characters"),
		),
	)
}

// VoteRequest is shared by the up/downvote endpoints. HasUpvoted and
// HasDownvoted reflect the caller's current vote state; the service turns
// them into a retract, switch, or fresh cast.
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

// ListQuestionsRequest drives the home/search listing.
type ListQuestionsRequest struct {
	SearchQuery string `form:"q"`
	Filter      string `form:"filter"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

func (r ListQuestionsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Filter,
			validation.In(FilterNewest, FilterFrequent, FilterUnanswered, FilterRecommended, "").
				Error("unknown filter"),
		),
	)
}

// ViewQuestionRequest records a question view; the user is optional because
// anonymous views still bump the counter.
type ViewQuestionRequest struct {
	UserID *uuid.UUID `json:"user_id"`
}

// QuestionListResponse pairs a page of questions with the isNext flag.
type QuestionListResponse struct {
	Questions []*QuestionSummary `json:"questions"`
	IsNext    bool               `json:"is_next"`
}

func notNilUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_uuid", "must be a valid id")
	}
	return nil
}
