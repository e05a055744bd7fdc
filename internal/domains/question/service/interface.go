package service

import (
	"context"

	"github.com/google/uuid"

	"devflow-backend/internal/domains/question/model"
)

type ServiceInterface interface {
	CreateQuestion(ctx context.Context, req model.CreateQuestionRequest) (*model.QuestionDetail, error)
	EditQuestion(ctx context.Context, questionID uuid.UUID, req model.EditQuestionRequest) error
	DeleteQuestion(ctx context.Context, questionID uuid.UUID, path string) error

	GetQuestions(ctx context.Context, req model.ListQuestionsRequest) (*model.QuestionListResponse, error)
	GetQuestionByID(ctx context.Context, questionID uuid.UUID) (*model.QuestionDetail, error)
	GetHotQuestions(ctx context.Context) ([]*model.QuestionSummary, error)

	UpvoteQuestion(ctx context.Context, questionID uuid.UUID, req model.VoteRequest) error
	DownvoteQuestion(ctx context.Context, questionID uuid.UUID, req model.VoteRequest) error

	ViewQuestion(ctx context.Context, questionID uuid.UUID, userID *uuid.UUID) error
}

// TagResolver is the slice of the tag service question creation needs:
// case-insensitive find-or-create plus linking to the question.
type TagResolver interface {
	ResolveOrCreate(ctx context.Context, name string, questionID uuid.UUID, position int) (uuid.UUID, error)
}
