package repository

import (
	"context"

	"github.com/google/uuid"

	questionModel "devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/tag/model"
)

type TagRepository interface {
	// ResolveOrCreate finds the tag case-insensitively, creating it with the
	// given casing when absent, and links it to the question. Idempotent per
	// (name, question) pair.
	ResolveOrCreate(ctx context.Context, name string, questionID uuid.UUID, position int) (uuid.UUID, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Tag, error)

	List(ctx context.Context, opts model.ListOptions) ([]*model.TagWithStats, int, error)
	TopPopular(ctx context.Context, limit int) ([]*model.TagWithStats, error)

	// QuestionsByTag lists the tag's questions, newest first, with optional
	// title search. Returns ErrTagNotFound when the tag is absent.
	QuestionsByTag(ctx context.Context, tagID uuid.UUID, searchQuery string, skip, limit int) (string, []*questionModel.QuestionSummary, int, error)
}
