package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"devflow-backend/internal/domains/question/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &postgresQuestionRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresQuestionRepository) Create(ctx context.Context, question *model.Question) error {
	query := `
		INSERT INTO questions (id, title, content, author_id, views, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		question.ID,
		question.Title,
		question.Content,
		question.AuthorID,
		question.Views,
		question.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionDetail, error) {
	query := `
		SELECT
			q.id, q.title, q.content, q.views, q.created_at,
			u.id, u.auth_id, u.name, u.picture,
			(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count,
			(SELECT COUNT(*) FROM question_votes v WHERE v.question_id = q.id AND v.value = 1) AS upvote_count
		FROM questions q
		JOIN users u ON u.id = q.author_id
		WHERE q.id = $1
	`

	detail := &model.QuestionDetail{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Content,
		&detail.Views,
		&detail.CreatedAt,
		&detail.Author.ID,
		&detail.Author.AuthID,
		&detail.Author.Name,
		&detail.Author.Picture,
		&detail.AnswerCount,
		&detail.UpvoteCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	// Tags in attachment order
	tags, err := r.tagsFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	detail.Tags = tags[id]
	if detail.Tags == nil {
		detail.Tags = []model.TagSummary{}
	}

	// Vote sets
	voteRows, err := r.pool.Query(ctx,
		`SELECT user_id, value FROM question_votes WHERE question_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question votes: %w", err)
	}
	defer voteRows.Close()

	detail.Upvotes = []uuid.UUID{}
	detail.Downvotes = []uuid.UUID{}
	for voteRows.Next() {
		var userID uuid.UUID
		var value int
		if err := voteRows.Scan(&userID, &value); err != nil {
			return nil, fmt.Errorf("failed to scan question vote: %w", err)
		}
		if value > 0 {
			detail.Upvotes = append(detail.Upvotes, userID)
		} else {
			detail.Downvotes = append(detail.Downvotes, userID)
		}
	}
	if err := voteRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question votes: %w", err)
	}

	return detail, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresQuestionRepository) UpdateContent(ctx context.Context, id uuid.UUID, title, content string) error {
	query := `UPDATE questions SET title = $2, content = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, title, content)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrQuestionNotFound
	}

	return nil
}

// =====================================================
// DELETE (CASCADE)
// =====================================================

func (r *postgresQuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback(ctx)

	// Interactions referencing the question or any of its answers
	_, err = tx.Exec(ctx, `
		DELETE FROM interactions
		WHERE question_id = $1
		   OR answer_id IN (SELECT id FROM answers WHERE question_id = $1)
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question interactions: %w", err)
	}

	// Votes on the question's answers, then the answers themselves
	_, err = tx.Exec(ctx, `
		DELETE FROM answer_votes
		WHERE answer_id IN (SELECT id FROM answers WHERE question_id = $1)
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete answer votes: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM answers WHERE question_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM question_votes WHERE question_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete question votes: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM saved_questions WHERE question_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete saved references: %w", err)
	}

	// Pull the question out of every tag that listed it
	if _, err = tx.Exec(ctx, `DELETE FROM question_tags WHERE question_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete tag links: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresQuestionRepository) List(ctx context.Context, opts model.ListOptions) ([]*model.QuestionSummary, int, error) {
	where := ""
	args := []interface{}{}
	argCount := 1

	if opts.SearchQuery != "" {
		where += fmt.Sprintf(" AND (q.title ILIKE $%d OR q.content ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+opts.SearchQuery+"%")
		argCount++
	}

	orderBy := " ORDER BY q.created_at DESC"
	switch opts.Filter {
	case model.FilterFrequent:
		orderBy = " ORDER BY q.views DESC"
	case model.FilterUnanswered:
		where += " AND NOT EXISTS (SELECT 1 FROM answers a WHERE a.question_id = q.id)"
	case model.FilterNewest, model.FilterRecommended, "":
		// newest ordering
	}

	query := `
		SELECT
			q.id, q.title, q.views, q.created_at,
			u.id, u.auth_id, u.name, u.picture,
			(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count,
			(SELECT COUNT(*) FROM question_votes v WHERE v.question_id = q.id AND v.value = 1) AS upvote_count
		FROM questions q
		JOIN users u ON u.id = q.author_id
		WHERE 1=1
	` + where + orderBy + fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, opts.Limit, opts.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, 0, err
	}

	// Count with the same filters
	countQuery := `SELECT COUNT(*) FROM questions q WHERE 1=1` + where
	countArgs := args[:len(args)-2]

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	if err := r.attachTags(ctx, summaries); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

// =====================================================
// HOT QUESTIONS
// =====================================================

func (r *postgresQuestionRepository) ListHot(ctx context.Context, limit int) ([]*model.QuestionSummary, error) {
	// Views is the primary key of the ordering, upvotes breaks ties.
	query := `
		SELECT
			q.id, q.title, q.views, q.created_at,
			u.id, u.auth_id, u.name, u.picture,
			(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count,
			(SELECT COUNT(*) FROM question_votes v WHERE v.question_id = q.id AND v.value = 1) AS upvote_count
		FROM questions q
		JOIN users u ON u.id = q.author_id
		ORDER BY q.views DESC, upvote_count DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list hot questions: %w", err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, summaries); err != nil {
		return nil, err
	}

	return summaries, nil
}

// =====================================================
// VIEWS & VOTES
// =====================================================

func (r *postgresQuestionRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `UPDATE questions SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrQuestionNotFound
	}
	return nil
}

func (r *postgresQuestionRepository) AuthorOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var authorID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM questions WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, model.ErrQuestionNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get question author: %w", err)
	}
	return authorID, nil
}

func (r *postgresQuestionRepository) SetVote(ctx context.Context, questionID, userID uuid.UUID, value int) error {
	// The (question_id, user_id) primary key turns a direction switch into
	// an update, so the user is never in both vote sets.
	query := `
		INSERT INTO question_votes (question_id, user_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (question_id, user_id) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.pool.Exec(ctx, query, questionID, userID, value); err != nil {
		return fmt.Errorf("failed to set question vote: %w", err)
	}
	return nil
}

func (r *postgresQuestionRepository) RemoveVote(ctx context.Context, questionID, userID uuid.UUID) error {
	query := `DELETE FROM question_votes WHERE question_id = $1 AND user_id = $2`

	if _, err := r.pool.Exec(ctx, query, questionID, userID); err != nil {
		return fmt.Errorf("failed to remove question vote: %w", err)
	}
	return nil
}

func (r *postgresQuestionRepository) TagIDs(ctx context.Context, questionID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT tag_id FROM question_tags WHERE question_id = $1 ORDER BY position`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get question tags: %w", err)
	}
	defer rows.Close()

	var tagIDs []uuid.UUID
	for rows.Next() {
		var tagID uuid.UUID
		if err := rows.Scan(&tagID); err != nil {
			return nil, fmt.Errorf("failed to scan tag id: %w", err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question tags: %w", err)
	}

	return tagIDs, nil
}

// =====================================================
// HELPERS
// =====================================================

func scanSummaries(rows pgx.Rows) ([]*model.QuestionSummary, error) {
	var summaries []*model.QuestionSummary
	for rows.Next() {
		summary := &model.QuestionSummary{Tags: []model.TagSummary{}}
		err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.Views,
			&summary.CreatedAt,
			&summary.Author.ID,
			&summary.Author.AuthID,
			&summary.Author.Name,
			&summary.Author.Picture,
			&summary.AnswerCount,
			&summary.UpvoteCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	return summaries, nil
}

// tagsFor resolves tag summaries for a batch of questions in one query,
// preserving attachment order.
func (r *postgresQuestionRepository) tagsFor(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID][]model.TagSummary, error) {
	if len(questionIDs) == 0 {
		return map[uuid.UUID][]model.TagSummary{}, nil
	}

	ids := make([]string, 0, len(questionIDs))
	for _, id := range questionIDs {
		ids = append(ids, id.String())
	}

	query := `
		SELECT qt.question_id, t.id, t.name
		FROM question_tags qt
		JOIN tags t ON t.id = qt.tag_id
		WHERE qt.question_id = ANY($1::uuid[])
		ORDER BY qt.question_id, qt.position
	`

	rows, err := r.pool.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load question tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[uuid.UUID][]model.TagSummary)
	for rows.Next() {
		var questionID uuid.UUID
		var tag model.TagSummary
		if err := rows.Scan(&questionID, &tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan question tag: %w", err)
		}
		tags[questionID] = append(tags[questionID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question tags: %w", err)
	}

	return tags, nil
}

func (r *postgresQuestionRepository) attachTags(ctx context.Context, summaries []*model.QuestionSummary) error {
	ids := make([]uuid.UUID, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}

	tags, err := r.tagsFor(ctx, ids)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		if resolved, ok := tags[s.ID]; ok {
			s.Tags = resolved
		}
	}

	return nil
}
