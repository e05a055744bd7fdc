package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	questionModel "devflow-backend/internal/domains/question/model"
	"devflow-backend/internal/domains/tag/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresTagRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTagRepository(pool *pgxpool.Pool) TagRepository {
	return &postgresTagRepository{pool: pool}
}

// =====================================================
// RESOLVE OR CREATE
// =====================================================

func (r *postgresTagRepository) ResolveOrCreate(ctx context.Context, name string, questionID uuid.UUID, position int) (uuid.UUID, error) {
	// Upsert and link commit together so a tag never lands without its
	// question reference.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin tag resolve: %w", err)
	}
	defer tx.Rollback(ctx)

	// The conflict target is the expression index on LOWER(name), so "Python"
	// and "python" resolve to the same row. The no-op update lets RETURNING
	// yield the id on both paths.
	upsert := `
		INSERT INTO tags (id, name, created_on)
		VALUES ($1, $2, $3)
		ON CONFLICT ((LOWER(name))) DO UPDATE SET name = tags.name
		RETURNING id
	`

	var tagID uuid.UUID
	if err := tx.QueryRow(ctx, upsert, uuid.New(), name, time.Now()).Scan(&tagID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert tag %q: %w", name, err)
	}

	link := `
		INSERT INTO question_tags (question_id, tag_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`

	if _, err := tx.Exec(ctx, link, questionID, tagID, position); err != nil {
		return uuid.Nil, fmt.Errorf("failed to link tag %q: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit tag resolve: %w", err)
	}

	return tagID, nil
}

// =====================================================
// LOOKUPS
// =====================================================

func (r *postgresTagRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	query := `SELECT id, name, description, created_on FROM tags WHERE id = $1`

	tag := &model.Tag{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.Description, &tag.CreatedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

func (r *postgresTagRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Tag, error) {
	if len(ids) == 0 {
		return []*model.Tag{}, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	query := `SELECT id, name, description, created_on FROM tags WHERE id = ANY($1::uuid[])`

	rows, err := r.pool.Query(ctx, query, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*model.Tag, len(ids))
	for rows.Next() {
		tag := &model.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Description, &tag.CreatedOn); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		byID[tag.ID] = tag
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	// Preserve the requested order (it carries the ranking)
	tags := make([]*model.Tag, 0, len(ids))
	for _, id := range ids {
		if tag, ok := byID[id]; ok {
			tags = append(tags, tag)
		}
	}

	return tags, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresTagRepository) List(ctx context.Context, opts model.ListOptions) ([]*model.TagWithStats, int, error) {
	where := ""
	args := []interface{}{}
	argCount := 1

	if opts.SearchQuery != "" {
		where += fmt.Sprintf(" AND t.name ILIKE $%d", argCount)
		args = append(args, "%"+opts.SearchQuery+"%")
		argCount++
	}

	orderBy := " ORDER BY t.created_on DESC"
	switch opts.Filter {
	case model.FilterPopular:
		orderBy = " ORDER BY question_count DESC"
	case model.FilterName:
		orderBy = " ORDER BY t.name ASC"
	case model.FilterOld:
		orderBy = " ORDER BY t.created_on ASC"
	case model.FilterRecent, "":
		// recent ordering
	}

	query := `
		SELECT
			t.id, t.name, t.description, t.created_on,
			(SELECT COUNT(*) FROM question_tags qt WHERE qt.tag_id = t.id) AS question_count
		FROM tags t
		WHERE 1=1
	` + where + orderBy + fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, opts.Limit, opts.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*model.TagWithStats
	for rows.Next() {
		tag := &model.TagWithStats{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Description, &tag.CreatedOn, &tag.QuestionCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tags: %w", err)
	}

	// Count with the same filters
	countQuery := `SELECT COUNT(*) FROM tags t WHERE 1=1` + where
	countArgs := args[:len(args)-2]

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	return tags, total, nil
}

func (r *postgresTagRepository) TopPopular(ctx context.Context, limit int) ([]*model.TagWithStats, error) {
	query := `
		SELECT
			t.id, t.name, t.description, t.created_on,
			(SELECT COUNT(*) FROM question_tags qt WHERE qt.tag_id = t.id) AS question_count
		FROM tags t
		ORDER BY question_count DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular tags: %w", err)
	}
	defer rows.Close()

	var tags []*model.TagWithStats
	for rows.Next() {
		tag := &model.TagWithStats{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Description, &tag.CreatedOn, &tag.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan popular tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read popular tags: %w", err)
	}

	return tags, nil
}

// =====================================================
// QUESTIONS BY TAG
// =====================================================

func (r *postgresTagRepository) QuestionsByTag(ctx context.Context, tagID uuid.UUID, searchQuery string, skip, limit int) (string, []*questionModel.QuestionSummary, int, error) {
	// Existence check doubles as the tag title lookup
	var tagName string
	err := r.pool.QueryRow(ctx, `SELECT name FROM tags WHERE id = $1`, tagID).Scan(&tagName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, 0, model.ErrTagNotFound
		}
		return "", nil, 0, fmt.Errorf("failed to get tag: %w", err)
	}

	where := ""
	args := []interface{}{tagID}
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
		FROM question_tags qt
		JOIN questions q ON q.id = qt.question_id
		JOIN users u ON u.id = q.author_id
		WHERE qt.tag_id = $1
	` + where + fmt.Sprintf(" ORDER BY q.created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return "", nil, 0, fmt.Errorf("failed to list tag questions: %w", err)
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
			return "", nil, 0, fmt.Errorf("failed to scan tag question: %w", err)
		}
		summaries = append(summaries, summary)
		ids = append(ids, summary.ID.String())
	}
	if err := rows.Err(); err != nil {
		return "", nil, 0, fmt.Errorf("failed to read tag questions: %w", err)
	}

	// Count with the same filters
	countQuery := `
		SELECT COUNT(*)
		FROM question_tags qt
		JOIN questions q ON q.id = qt.question_id
		WHERE qt.tag_id = $1
	` + where
	countArgs := args[:len(args)-2]

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return "", nil, 0, fmt.Errorf("failed to count tag questions: %w", err)
	}

	// Attach each question's full tag list
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
			return "", nil, 0, fmt.Errorf("failed to load question tags: %w", err)
		}
		defer tagRows.Close()

		for tagRows.Next() {
			var questionID uuid.UUID
			var tag questionModel.TagSummary
			if err := tagRows.Scan(&questionID, &tag.ID, &tag.Name); err != nil {
				return "", nil, 0, fmt.Errorf("failed to scan question tag: %w", err)
			}
			if summary, ok := byID[questionID]; ok {
				summary.Tags = append(summary.Tags, tag)
			}
		}
		if err := tagRows.Err(); err != nil {
			return "", nil, 0, fmt.Errorf("failed to read question tags: %w", err)
		}
	}

	return tagName, summaries, total, nil
}
