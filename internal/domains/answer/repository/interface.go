package repository

import (
	"context"

	"github.com/google/uuid"

	"devflow-backend/internal/domains/answer/model"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *model.Answer) error

	// ListByQuestion pages the question's answers with the requested sort
	// and returns the total matching count.
	ListByQuestion(ctx context.Context, opts model.ListOptions) ([]*model.AnswerSummary, int, error)

	// AuthorOf returns the answer's author id, or ErrAnswerNotFound.
	AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	SetVote(ctx context.Context, answerID, userID uuid.UUID, value int) error
	RemoveVote(ctx context.Context, answerID, userID uuid.UUID) error

	// Delete removes the answer together with its votes and the interaction
	// records referencing it.
	Delete(ctx context.Context, id uuid.UUID) error
}
