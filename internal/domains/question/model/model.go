package model

import (
	"time"

	"github.com/google/uuid"
)

// Listing filters accepted by GetQuestions.
const (
	FilterNewest      = "newest"
	FilterFrequent    = "frequent"
	FilterUnanswered  = "unanswered"
	FilterRecommended = "recommended"
)

// Question is the stored entity. Tags, votes and answers live in relation
// tables and are joined in on read.
type Question struct {
	ID        uuid.UUID
	Title     string
	Content   string
	AuthorID  uuid.UUID
	Views     int64
	CreatedAt time.Time
}

// AuthorSummary is the author slice listings embed.
type AuthorSummary struct {
	ID      uuid.UUID `json:"id"`
	AuthID  string    `json:"auth_id"`
	Name    string    `json:"name"`
	Picture string    `json:"picture"`
}

// TagSummary is the tag slice listings embed.
type TagSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// QuestionSummary is one row of a question listing.
type QuestionSummary struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Views       int64         `json:"views"`
	AnswerCount int           `json:"answer_count"`
	UpvoteCount int           `json:"upvote_count"`
	Author      AuthorSummary `json:"author"`
	Tags        []TagSummary  `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
}

// QuestionDetail is the full question page payload: content plus the vote
// sets so the caller can mark the current user's vote state.
type QuestionDetail struct {
	QuestionSummary
	Content   string      `json:"content"`
	Upvotes   []uuid.UUID `json:"upvotes"`
	Downvotes []uuid.UUID `json:"downvotes"`
}

// ListOptions is the repository-level query shape for listings.
type ListOptions struct {
	SearchQuery string
	Filter      string
	Skip        int
	Limit       int
}
