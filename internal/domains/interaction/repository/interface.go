package repository

import (
	"context"

	"github.com/google/uuid"

	"devflow-backend/internal/domains/interaction/model"
)

type InteractionRepository interface {
	// Record appends an interaction. The log is append-only; records are
	// only removed when the content they reference is cascaded away.
	Record(ctx context.Context, interaction *model.Interaction) error

	// HasViewed reports whether a view interaction already exists for this
	// user and question.
	HasViewed(ctx context.Context, userID, questionID uuid.UUID) (bool, error)

	// TopTagIDs groups the user's interactions by denormalized tag id and
	// returns the most frequent ones, count descending.
	TopTagIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
}
