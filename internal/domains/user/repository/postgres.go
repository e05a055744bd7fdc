package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	questionModel "devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/user/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

const userColumns = `id, auth_id, name, username, email, bio, picture, location, portfolio_website, reputation, joined_at`

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID,
		&user.AuthID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Bio,
		&user.Picture,
		&user.Location,
		&user.PortfolioWebsite,
		&user.Reputation,
		&user.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, auth_id, name, username, email, picture, reputation, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.AuthID,
		user.Name,
		user.Username,
		user.Email,
		user.Picture,
		user.Reputation,
		user.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// =====================================================
// LOOKUPS
// =====================================================

func (r *postgresUserRepository) GetByAuthID(ctx context.Context, authID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, authID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresUserRepository) Update(ctx context.Context, authID string, req model.UpdateUserRequest) error {
	query := `
		UPDATE users
		SET name = $2, username = $3, bio = $4, location = $5, portfolio_website = $6
		WHERE auth_id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		authID,
		req.Name,
		req.Username,
		req.Bio,
		req.Location,
		req.PortfolioWebsite,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// =====================================================
// DELETE (CASCADE)
// =====================================================

// Delete removes the user and everything they own in one transaction. The
// ordering matters: interactions and votes go first so foreign keys never
// dangle, then owned answers and questions, then the user row.
func (r *postgresUserRepository) Delete(ctx context.Context, authID string) (*model.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + userColumns + ` FROM users WHERE auth_id = $1`
	user, err := scanUser(tx.QueryRow(ctx, query, authID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	steps := []struct {
		name  string
		query string
	}{
		// Interactions by the user, plus any interaction referencing the
		// user's questions or answers
		{"interactions", `
			DELETE FROM interactions
			WHERE user_id = $1
			   OR question_id IN (SELECT id FROM questions WHERE author_id = $1)
			   OR answer_id IN (
					SELECT id FROM answers
					WHERE author_id = $1
					   OR question_id IN (SELECT id FROM questions WHERE author_id = $1)
			   )
		`},
		// Votes cast by the user and votes on the user's content
		{"answer votes", `
			DELETE FROM answer_votes
			WHERE user_id = $1
			   OR answer_id IN (
					SELECT id FROM answers
					WHERE author_id = $1
					   OR question_id IN (SELECT id FROM questions WHERE author_id = $1)
			   )
		`},
		{"question votes", `
			DELETE FROM question_votes
			WHERE user_id = $1
			   OR question_id IN (SELECT id FROM questions WHERE author_id = $1)
		`},
		// The user's answers anywhere, plus all answers under their questions
		{"answers", `
			DELETE FROM answers
			WHERE author_id = $1
			   OR question_id IN (SELECT id FROM questions WHERE author_id = $1)
		`},
		// Saved references, both directions
		{"saved questions", `
			DELETE FROM saved_questions
			WHERE user_id = $1
			   OR question_id IN (SELECT id FROM questions WHERE author_id = $1)
		`},
		{"tag followers", `DELETE FROM tag_followers WHERE user_id = $1`},
		{"tag links", `
			DELETE FROM question_tags
			WHERE question_id IN (SELECT id FROM questions WHERE author_id = $1)
		`},
		{"questions", `DELETE FROM questions WHERE author_id = $1`},
		{"user", `DELETE FROM users WHERE id = $1`},
	}

	for _, step := range steps {
		if _, err := tx.Exec(ctx, step.query, user.ID); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}

	return user, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresUserRepository) List(ctx context.Context, opts model.ListOptions) ([]*model.User, int, error) {
	where := ""
	args := []interface{}{}
	argCount := 1

	if opts.SearchQuery != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR username ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+opts.SearchQuery+"%")
		argCount++
	}

	orderBy := " ORDER BY joined_at DESC"
	switch opts.Filter {
	case model.FilterOldUsers:
		orderBy = " ORDER BY joined_at ASC"
	case model.FilterTopContributors:
		orderBy = " ORDER BY reputation DESC"
	case model.FilterNewUsers, "":
		// newest ordering
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1` +
		where + orderBy + fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, opts.Limit, opts.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read users: %w", err)
	}

	// Count with the same filters
	countQuery := `SELECT COUNT(*) FROM users WHERE 1=1` + where
	countArgs := args[:len(args)-2]

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}

// =====================================================
// REPUTATION
// =====================================================

func (r *postgresUserRepository) IncrementReputation(ctx context.Context, userID uuid.UUID, delta int) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE users SET reputation = reputation + $2 WHERE id = $1`, userID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust reputation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// =====================================================
// SAVED QUESTIONS
// =====================================================

func (r *postgresUserRepository) IsSaved(ctx context.Context, userID, questionID uuid.UUID) (bool, error) {
	var saved bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM saved_questions WHERE user_id = $1 AND question_id = $2
		)
	`, userID, questionID).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("failed to check saved question: %w", err)
	}
	return saved, nil
}

func (r *postgresUserRepository) Save(ctx context.Context, userID, questionID uuid.UUID) error {
	query := `
		INSERT INTO saved_questions (user_id, question_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, userID, questionID); err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) Unsave(ctx context.Context, userID, questionID uuid.UUID) error {
	query := `DELETE FROM saved_questions WHERE user_id = $1 AND question_id = $2`

	if _, err := r.pool.Exec(ctx, query, userID, questionID); err != nil {
		return fmt.Errorf("failed to unsave question: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) SavedQuestions(ctx context.Context, userID uuid.UUID, searchQuery string, skip, limit int) ([]*questionModel.QuestionSummary, int, error) {
	where := ""
	args := []interface{}{userID}
	argCount := 2

	if searchQuery != "" {
		where = fmt.Sprintf(" AND q.title ILIKE $%d", argCount)
		args = append(args, "%"+searchQuery+"%")
		argCount++
	}

	query := `
		SELECT
			q.id, q.title, q.views, q.created_at,
			u.id, u.auth_id, u.name, u.picture,
			(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count,
			(SELECT COUNT(*) FROM question_votes v WHERE v.question_id = q.id AND v.value = 1) AS upvote_count
		FROM saved_questions sq
		JOIN questions q ON q.id = sq.question_id
		JOIN users u ON u.id = q.author_id
		WHERE sq.user_id = $1
	` + where + fmt.Sprintf(" ORDER BY sq.saved_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list saved questions: %w", err)
	}
	defer rows.Close()

	var summaries []*questionModel.QuestionSummary
	var ids []string
	for rows.Next() {
		summary := &questionModel.QuestionSummary{Tags: []questionModel.TagSummary{}}
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
			return nil, 0, fmt.Errorf("failed to scan saved question: %w", err)
		}
		summaries = append(summaries, summary)
		ids = append(ids, summary.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read saved questions: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM saved_questions sq
		JOIN questions q ON q.id = sq.question_id
		WHERE sq.user_id = $1
	` + where
	countArgs := args[:len(args)-2]

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count saved questions: %w", err)
	}

	// Attach each question's tag list
	if len(summaries) > 0 {
		byID := make(map[uuid.UUID]*questionModel.QuestionSummary, len(summaries))
		for _, s := range summaries {
			byID[s.ID] = s
		}

		tagRows, err := r.pool.Query(ctx, `
			SELECT qt.question_id, t.id, t.name
			FROM question_tags qt
			JOIN tags t ON t.id = qt.tag_id
			WHERE qt.question_id = ANY($1::uuid[])
			ORDER BY qt.question_id, qt.position
		`, pq.Array(ids))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load question tags: %w", err)
		}
		defer tagRows.Close()

		for tagRows.Next() {
			var questionID uuid.UUID
			var tag questionModel.TagSummary
			if err := tagRows.Scan(&questionID, &tag.ID, &tag.Name); err != nil {
				return nil, 0, fmt.Errorf("failed to scan question tag: %w", err)
			}
			if summary, ok := byID[questionID]; ok {
				summary.Tags = append(summary.Tags, tag)
			}
		}
		if err := tagRows.Err(); err != nil {
			return nil, 0, fmt.Errorf("failed to read question tags: %w", err)
		}
	}

	return summaries, total, nil
}

// =====================================================
// CONTENT COUNTS
// =====================================================

func (r *postgresUserRepository) CountQuestions(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE author_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

func (r *postgresUserRepository) CountAnswers(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM answers WHERE author_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return count, nil
}
