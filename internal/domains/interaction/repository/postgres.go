package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"devflow-backend/internal/domains/interaction/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresInteractionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresInteractionRepository(pool *pgxpool.Pool) InteractionRepository {
	return &postgresInteractionRepository{pool: pool}
}

func (r *postgresInteractionRepository) Record(ctx context.Context, interaction *model.Interaction) error {
	query := `
		INSERT INTO interactions (id, user_id, action, question_id, answer_id, tag_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if interaction.ID == uuid.Nil {
		interaction.ID = uuid.New()
	}
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}

	tagIDs := make([]string, 0, len(interaction.TagIDs))
	for _, id := range interaction.TagIDs {
		tagIDs = append(tagIDs, id.String())
	}

	_, err := r.pool.Exec(ctx, query,
		interaction.ID,
		interaction.UserID,
		interaction.Action,
		interaction.QuestionID,
		interaction.AnswerID,
		pq.Array(tagIDs),
		interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}

	return nil
}

func (r *postgresInteractionRepository) HasViewed(ctx context.Context, userID, questionID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM interactions
			WHERE user_id = $1 AND question_id = $2 AND action = $3
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, questionID, model.ActionView).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check view interaction: %w", err)
	}

	return exists, nil
}

func (r *postgresInteractionRepository) TopTagIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	// Unnest the denormalized tag arrays and count occurrences per tag.
	query := `
		SELECT tag_id, COUNT(*) AS interactions
		FROM interactions, UNNEST(tag_ids) AS tag_id
		WHERE user_id = $1
		GROUP BY tag_id
		ORDER BY interactions DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top tags: %w", err)
	}
	defer rows.Close()

	var tagIDs []uuid.UUID
	for rows.Next() {
		var raw string
		var count int
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, fmt.Errorf("failed to scan top tag: %w", err)
		}

		tagID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tag id %q: %w", raw, err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top tags: %w", err)
	}

	return tagIDs, nil
}
