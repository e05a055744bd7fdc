package model

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the interaction log.
const (
	ActionView   = "view"
	ActionAnswer = "answer"
	ActionUpvote = "upvote"
)

// Interaction is one append-only record of a user acting on content. Tag ids
// are denormalized onto the record so interest ranking can group them without
// joining back through questions.
type Interaction struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Action     string
	QuestionID *uuid.UUID
	AnswerID   *uuid.UUID
	TagIDs     []uuid.UUID
	CreatedAt  time.Time
}
