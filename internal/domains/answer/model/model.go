package model

import (
	"time"

	"github.com/google/uuid"

	questionModel "devflow-backend/internal/domains/question/model"
)

// Listing sorts accepted by GetAnswers.
const (
	SortHighestUpvotes = "highestUpvotes"
	SortLowestUpvotes  = "lowestUpvotes"
	SortRecent         = "recent"
	SortOld            = "old"
)

// Answer is a reply to a question. Membership in the question's answer list
// is the relation itself.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnswerSummary is a listing row: answer plus author and vote sets.
type AnswerSummary struct {
	ID        uuid.UUID                   `json:"id"`
	Content   string                      `json:"content"`
	CreatedAt time.Time                   `json:"created_at"`
	Author    questionModel.AuthorSummary `json:"author"`
	Upvotes   []uuid.UUID                 `json:"upvotes"`
	Downvotes []uuid.UUID                 `json:"downvotes"`
}

// ListOptions is the repository-level query shape for answer listings.
type ListOptions struct {
	QuestionID uuid.UUID
	SortBy     string
	Skip       int
	Limit      int
}
