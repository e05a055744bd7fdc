package service

import (
	"context"

	"github.com/google/uuid"

	"devflow-backend/internal/domains/tag/model"
)

// ServiceInterface defines tag business operations
type ServiceInterface interface {
	// ResolveOrCreate resolves a tag name case-insensitively, creating the
	// tag if needed, and links it to the question at the given position.
	ResolveOrCreate(ctx context.Context, name string, questionID uuid.UUID, position int) (uuid.UUID, error)

	GetAllTags(ctx context.Context, req model.ListTagsRequest) (*model.TagListResponse, error)
	GetQuestionsByTag(ctx context.Context, tagID uuid.UUID, req model.QuestionsByTagRequest) (*model.TagQuestionsResponse, error)
	GetTopPopularTags(ctx context.Context) ([]*model.TagWithStats, error)
	GetTopInteractedTags(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Tag, error)
}

// UserChecker is the slice of the user domain the tag service needs.
type UserChecker interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}
