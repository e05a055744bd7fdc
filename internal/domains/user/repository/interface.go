package repository

import (
	"context"

	"github.com/google/uuid"

	questionModel "devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/user/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error

	// GetByAuthID returns ErrUserNotFound when no user carries the external
	// identity.
	GetByAuthID(ctx context.Context, authID string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	Update(ctx context.Context, authID string, req model.UpdateUserRequest) error

	// Delete removes the user and everything they own: questions (via the
	// question cascade), answers, votes, saves and interactions.
	Delete(ctx context.Context, authID string) (*model.User, error)

	List(ctx context.Context, opts model.ListOptions) ([]*model.User, int, error)

	// IncrementReputation adjusts the running reputation total by delta,
	// which may be negative.
	IncrementReputation(ctx context.Context, userID uuid.UUID, delta int) error

	// Saved set operations
	IsSaved(ctx context.Context, userID, questionID uuid.UUID) (bool, error)
	Save(ctx context.Context, userID, questionID uuid.UUID) error
	Unsave(ctx context.Context, userID, questionID uuid.UUID) error
	SavedQuestions(ctx context.Context, userID uuid.UUID, searchQuery string, skip, limit int) ([]*questionModel.QuestionSummary, int, error)

	CountQuestions(ctx context.Context, userID uuid.UUID) (int, error)
	CountAnswers(ctx context.Context, userID uuid.UUID) (int, error)
}
