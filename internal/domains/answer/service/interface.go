package service

import (
	"context"

	"github.com/google/uuid"

	"devflow-backend/internal/domains/answer/model"
)

// ServiceInterface defines answer business operations
type ServiceInterface interface {
	CreateAnswer(ctx context.Context, req model.CreateAnswerRequest) (*model.Answer, error)
	GetAnswers(ctx context.Context, questionID uuid.UUID, req model.ListAnswersRequest) (*model.AnswerListResponse, error)
	UpvoteAnswer(ctx context.Context, answerID uuid.UUID, req model.VoteRequest) error
	DownvoteAnswer(ctx context.Context, answerID uuid.UUID, req model.VoteRequest) error
	DeleteAnswer(ctx context.Context, answerID uuid.UUID, path string) error
}
