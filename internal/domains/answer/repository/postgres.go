package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"devflow-backend/internal/domains/answer/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresAnswerRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAnswerRepository(pool *pgxpool.Pool) AnswerRepository {
	return &postgresAnswerRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresAnswerRepository) Create(ctx context.Context, answer *model.Answer) error {
	query := `
		INSERT INTO answers (id, question_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		answer.ID,
		answer.QuestionID,
		answer.AuthorID,
		answer.Content,
		answer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresAnswerRepository) ListByQuestion(ctx context.Context, opts model.ListOptions) ([]*model.AnswerSummary, int, error) {
	orderBy := " ORDER BY a.created_at ASC"
	switch opts.SortBy {
	case model.SortHighestUpvotes:
		orderBy = " ORDER BY upvote_count DESC, a.created_at ASC"
	case model.SortLowestUpvotes:
		orderBy = " ORDER BY upvote_count ASC, a.created_at ASC"
	case model.SortRecent:
		orderBy = " ORDER BY a.created_at DESC"
	case model.SortOld, "":
		// insertion order
	}

	query := `
		SELECT
			a.id, a.content, a.created_at,
			u.id, u.auth_id, u.name, u.picture,
			(SELECT COUNT(*) FROM answer_votes v WHERE v.answer_id = a.id AND v.value = 1) AS upvote_count
		FROM answers a
		JOIN users u ON u.id = a.author_id
		WHERE a.question_id = $1
	` + orderBy + ` LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, opts.QuestionID, opts.Limit, opts.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	var summaries []*model.AnswerSummary
	var ids []string
	for rows.Next() {
		summary := &model.AnswerSummary{
			Upvotes:   []uuid.UUID{},
			Downvotes: []uuid.UUID{},
		}
		var upvoteCount int
		err := rows.Scan(
			&summary.ID,
			&summary.Content,
			&summary.CreatedAt,
			&summary.Author.ID,
			&summary.Author.AuthID,
			&summary.Author.Name,
			&summary.Author.Picture,
			&upvoteCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan answer: %w", err)
		}
		summaries = append(summaries, summary)
		ids = append(ids, summary.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read answers: %w", err)
	}

	var total int
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM answers WHERE question_id = $1`, opts.QuestionID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count answers: %w", err)
	}

	if err := r.attachVotes(ctx, summaries, ids); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

// attachVotes loads the page's vote sets in one query.
func (r *postgresAnswerRepository) attachVotes(ctx context.Context, summaries []*model.AnswerSummary, ids []string) error {
	if len(summaries) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*model.AnswerSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}

	rows, err := r.pool.Query(ctx, `
		SELECT answer_id, user_id, value
		FROM answer_votes
		WHERE answer_id = ANY($1::uuid[])
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load answer votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var answerID, userID uuid.UUID
		var value int
		if err := rows.Scan(&answerID, &userID, &value); err != nil {
			return fmt.Errorf("failed to scan answer vote: %w", err)
		}
		summary, ok := byID[answerID]
		if !ok {
			continue
		}
		if value > 0 {
			summary.Upvotes = append(summary.Upvotes, userID)
		} else {
			summary.Downvotes = append(summary.Downvotes, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read answer votes: %w", err)
	}

	return nil
}

// =====================================================
// VOTES
// =====================================================

func (r *postgresAnswerRepository) AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var authorID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM answers WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, model.ErrAnswerNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get answer author: %w", err)
	}
	return authorID, nil
}

func (r *postgresAnswerRepository) SetVote(ctx context.Context, answerID, userID uuid.UUID, value int) error {
	// The (answer_id, user_id) primary key turns a direction switch into an
	// update, so the user is never in both vote sets.
	query := `
		INSERT INTO answer_votes (answer_id, user_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (answer_id, user_id) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.pool.Exec(ctx, query, answerID, userID, value); err != nil {
		return fmt.Errorf("failed to set answer vote: %w", err)
	}
	return nil
}

func (r *postgresAnswerRepository) RemoveVote(ctx context.Context, answerID, userID uuid.UUID) error {
	query := `DELETE FROM answer_votes WHERE answer_id = $1 AND user_id = $2`

	if _, err := r.pool.Exec(ctx, query, answerID, userID); err != nil {
		return fmt.Errorf("failed to remove answer vote: %w", err)
	}
	return nil
}

// =====================================================
// DELETE (CASCADE)
// =====================================================

func (r *postgresAnswerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM answer_votes WHERE answer_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete answer votes: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM interactions WHERE answer_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete answer interactions: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrAnswerNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}
