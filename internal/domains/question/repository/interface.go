package repository

import (
	"context"

	"github.com/google/uuid"

	"devflow-backend/internal/domains/question/model"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionDetail, error)
	UpdateContent(ctx context.Context, id uuid.UUID, title, content string) error

	// Delete cascades: interactions on the question and its answers, answer
	// votes, answers, question votes, saved references, tag links, then the
	// question row. Idempotent when the question is already gone.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, opts model.ListOptions) ([]*model.QuestionSummary, int, error)
	ListHot(ctx context.Context, limit int) ([]*model.QuestionSummary, error)

	IncrementViews(ctx context.Context, id uuid.UUID) error

	// AuthorOf returns the question's author, or ErrQuestionNotFound.
	AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// SetVote upserts the user's vote; value is +1 or -1. A user holds at
	// most one vote per question.
	SetVote(ctx context.Context, questionID, userID uuid.UUID, value int) error
	RemoveVote(ctx context.Context, questionID, userID uuid.UUID) error

	// TagIDs returns the question's tag ids in attachment order.
	TagIDs(ctx context.Context, questionID uuid.UUID) ([]uuid.UUID, error)
}
