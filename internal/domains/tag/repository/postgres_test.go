package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================================================
// DATABASE INTEGRATION
// =====================================================

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	suffix := id.String()[:8]
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, auth_id, name, username, email)
		VALUES ($1, $2, $3, $4, $5)
	`, id, "auth-"+suffix, "Test User", "user-"+suffix, suffix+"@example.com")
	require.NoError(t, err)
	return id
}

func seedQuestion(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO questions (id, title, content, author_id)
		VALUES ($1, $2, $3, $4)
	`, id, "How do I profile memory usage?", "Heap keeps growing under load and I cannot tell why.", authorID)
	require.NoError(t, err)
	return id
}

func TestResolveOrCreateCaseInsensitive(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewPostgresTagRepository(pool)

	author := seedUser(t, pool)
	first := seedQuestion(t, pool, author)
	second := seedQuestion(t, pool, author)

	// Random suffix keeps reruns against a shared database independent
	name := "GraphQL-" + uuid.New().String()[:8]

	firstID, err := repo.ResolveOrCreate(ctx, name, first, 0)
	require.NoError(t, err)

	secondID, err := repo.ResolveOrCreate(ctx, strings.ToLower(name), second, 0)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	// One row, spelled the way it first arrived
	var count int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tags WHERE LOWER(name) = LOWER($1)`, name).Scan(&count))
	assert.Equal(t, 1, count)

	tag, err := repo.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, name, tag.Name)

	// Both questions reference the same tag
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM question_tags WHERE tag_id = $1`, firstID).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestResolveOrCreateLinksAtomically(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewPostgresTagRepository(pool)

	author := seedUser(t, pool)
	questionID := seedQuestion(t, pool, author)

	name := "Terraform-" + uuid.New().String()[:8]

	tagID, err := repo.ResolveOrCreate(ctx, name, questionID, 0)
	require.NoError(t, err)

	// A resolved tag always carries its question link
	var position int
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT position FROM question_tags WHERE question_id = $1 AND tag_id = $2
	`, questionID, tagID).Scan(&position))
	assert.Equal(t, 0, position)

	// Re-resolving the same pair keeps the original link untouched
	againID, err := repo.ResolveOrCreate(ctx, name, questionID, 3)
	require.NoError(t, err)
	assert.Equal(t, tagID, againID)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM question_tags WHERE question_id = $1 AND tag_id = $2
	`, questionID, tagID).Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, pool.QueryRow(ctx, `
		SELECT position FROM question_tags WHERE question_id = $1 AND tag_id = $2
	`, questionID, tagID).Scan(&position))
	assert.Equal(t, 0, position)
}
