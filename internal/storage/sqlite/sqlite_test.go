package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/itchan-dev/ohqueue/internal/storage/storagetest"
	"github.com/itchan-dev/ohqueue/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryDSN gives every test its own in-memory database.
func memoryDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared"
}

func newTestStorage(t *testing.T, dsn string) *Storage {
	t.Helper()
	s, err := New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Cleanup() })
	return s
}

func TestStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Storage {
		return newTestStorage(t, memoryDSN())
	})
}

func TestWithPragmas(t *testing.T) {
	assert.Equal(t, "queue.db?_pragma=busy_timeout(5000)", withPragmas("queue.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=busy_timeout(5000)", withPragmas("file:x?mode=memory"))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t, memoryDSN())

	require.NoError(t, applyMigrations(ctx, s.db))

	var applied int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "ohqueue.db")

	first, err := New(ctx, dsn)
	require.NoError(t, err)
	_, err = first.CreateQueue(ctx, "cs101")
	require.NoError(t, err)
	post, err := first.AddPost(ctx, domain.PostCreationData{QueueId: "cs101", AuthorName: "Alice", Content: "help with loops"})
	require.NoError(t, err)
	require.NoError(t, first.Cleanup())

	second := newTestStorage(t, dsn)
	posts, err := second.ListPosts(ctx, "cs101")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.Id, posts[0].Id)
	assert.True(t, post.CreatedAt.Equal(posts[0].CreatedAt))

	_, err = second.CreateQueue(ctx, "cs101")
	assert.Error(t, err, "queue uniqueness must survive a restart")
}
