// Package storagetest is a behavioural suite every storage backend must pass.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/itchan-dev/ohqueue/internal/service"
	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Storage interface {
	service.Storage
	Ping(ctx context.Context) error
}

// Factory returns a storage for one subtest. Backends may share state between
// calls; the suite only relies on queue ids it generated itself.
type Factory func(t *testing.T) Storage

func Run(t *testing.T, newStorage Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s Storage)
	}{
		{"CreateQueue", testCreateQueue},
		{"CreateQueueConcurrent", testCreateQueueConcurrent},
		{"ListPostsEmpty", testListPostsEmpty},
		{"AddPostOrder", testAddPostOrder},
		{"AddPostValidation", testAddPostValidation},
		{"AddPostOrphan", testAddPostOrphan},
		{"GetPost", testGetPost},
		{"DeletePost", testDeletePost},
		{"PostIdsMonotonic", testPostIdsMonotonic},
		{"QueueScoping", testQueueScoping},
		{"Ping", testPing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStorage(t))
		})
	}
}

// QueueId returns an id unique to this run so backends can share a database.
func QueueId(t *testing.T) domain.QueueId {
	t.Helper()
	return "q_" + uuid.NewString()
}

func addPost(t *testing.T, s Storage, queueId domain.QueueId, name, content string) domain.Post {
	t.Helper()
	post, err := s.AddPost(context.Background(), domain.PostCreationData{QueueId: queueId, AuthorName: name, Content: content})
	require.NoError(t, err)
	return post
}

func postIds(posts []domain.Post) []domain.PostId {
	ids := make([]domain.PostId, len(posts))
	for i, p := range posts {
		ids[i] = p.Id
	}
	return ids
}

func assertSamePost(t *testing.T, want, got domain.Post) {
	t.Helper()
	assert.Equal(t, want.Id, got.Id)
	assert.Equal(t, want.QueueId, got.QueueId)
	assert.Equal(t, want.AuthorName, got.AuthorName)
	assert.Equal(t, want.Content, got.Content)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %s, got %s", want.CreatedAt, got.CreatedAt)
}

func testCreateQueue(t *testing.T, s Storage) {
	ctx := context.Background()
	id := QueueId(t)

	queue, err := s.CreateQueue(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, queue.Id)
	assert.False(t, queue.CreatedAt.IsZero())

	_, err = s.CreateQueue(ctx, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, internal_errors.ErrAlreadyExists)

	_, err = s.CreateQueue(ctx, QueueId(t))
	assert.NoError(t, err, "a different id must still be accepted")
}

func testCreateQueueConcurrent(t *testing.T, s Storage) {
	const workers = 8
	id := QueueId(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		duplicate int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateQueue(context.Background(), id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, internal_errors.ErrAlreadyExists):
				duplicate++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, duplicate)
}

func testListPostsEmpty(t *testing.T, s Storage) {
	ctx := context.Background()

	t.Run("existing queue", func(t *testing.T) {
		id := QueueId(t)
		_, err := s.CreateQueue(ctx, id)
		require.NoError(t, err)

		posts, err := s.ListPosts(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("unknown queue", func(t *testing.T) {
		posts, err := s.ListPosts(ctx, QueueId(t))
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})
}

func testAddPostOrder(t *testing.T, s Storage) {
	ctx := context.Background()
	id := QueueId(t)
	_, err := s.CreateQueue(ctx, id)
	require.NoError(t, err)

	p1 := addPost(t, s, id, "Alice", "help with loops")
	p2 := addPost(t, s, id, "Bob", "stuck on recursion")
	p3 := addPost(t, s, id, "Carol", "segfault in lab 3")

	assert.Equal(t, id, p1.QueueId)
	assert.Equal(t, "Alice", p1.AuthorName)
	assert.Equal(t, "help with loops", p1.Content)
	assert.False(t, p1.CreatedAt.IsZero())

	posts, err := s.ListPosts(ctx, id)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []domain.PostId{p1.Id, p2.Id, p3.Id}, postIds(posts))
	assertSamePost(t, p1, posts[0])
	assertSamePost(t, p3, posts[2])
}

func testAddPostValidation(t *testing.T, s Storage) {
	ctx := context.Background()
	id := QueueId(t)

	cases := []domain.PostCreationData{
		{QueueId: id, AuthorName: "", Content: "hi"},
		{QueueId: id, AuthorName: "Alice", Content: ""},
		{QueueId: id, AuthorName: "   ", Content: "hi"},
	}
	for _, data := range cases {
		_, err := s.AddPost(ctx, data)
		require.Error(t, err)
		assert.True(t, internal_errors.Is[*internal_errors.ValidationError](err), "got %v", err)
	}

	posts, err := s.ListPosts(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, posts, "rejected posts must not be stored")
}

func testAddPostOrphan(t *testing.T, s Storage) {
	ctx := context.Background()
	id := QueueId(t) // never created

	post := addPost(t, s, id, "Dana", "is anyone here?")

	posts, err := s.ListPosts(ctx, id)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.Id, posts[0].Id)
}

func testGetPost(t *testing.T, s Storage) {
	ctx := context.Background()
	id := QueueId(t)
	post := addPost(t, s, id, "Alice", "help with loops")

	t.Run("found", func(t *testing.T) {
		got, err := s.GetPost(ctx, id, post.Id)
		require.NoError(t, err)
		assertSamePost(t, post, got)
	})

	t.Run("other queue", func(t *testing.T) {
		_, err := s.GetPost(ctx, QueueId(t), post.Id)
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	})

	t.Run("never existed", func(t *testing.T) {
		_, err := s.GetPost(ctx, id, post.Id+1_000_000)
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	})
}

func testDeletePost(t *testing.T, s Storage) {
	ctx := context.Background()
	id := QueueId(t)
	p1 := addPost(t, s, id, "Alice", "one")
	p2 := addPost(t, s, id, "Bob", "two")
	p3 := addPost(t, s, id, "Carol", "three")

	t.Run("wrong queue leaves post in place", func(t *testing.T) {
		err := s.DeletePost(ctx, QueueId(t), p2.Id)
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)

		_, err = s.GetPost(ctx, id, p2.Id)
		assert.NoError(t, err)
	})

	t.Run("removes exactly the target", func(t *testing.T) {
		require.NoError(t, s.DeletePost(ctx, id, p2.Id))

		posts, err := s.ListPosts(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []domain.PostId{p1.Id, p3.Id}, postIds(posts))

		_, err = s.GetPost(ctx, id, p2.Id)
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	})

	t.Run("second delete is not found", func(t *testing.T) {
		err := s.DeletePost(ctx, id, p2.Id)
		assert.ErrorIs(t, err, internal_errors.ErrNotFound)
	})
}

func testPostIdsMonotonic(t *testing.T, s Storage) {
	ctx := context.Background()
	a, b := QueueId(t), QueueId(t)

	p1 := addPost(t, s, a, "Alice", "first")
	p2 := addPost(t, s, b, "Bob", "second")
	require.NoError(t, s.DeletePost(ctx, b, p2.Id))
	p3 := addPost(t, s, a, "Carol", "third")

	assert.Greater(t, p2.Id, p1.Id)
	assert.Greater(t, p3.Id, p2.Id, "ids must not be reused after a delete")
}

func testQueueScoping(t *testing.T, s Storage) {
	ctx := context.Background()
	a, b := QueueId(t), QueueId(t)

	pa := addPost(t, s, a, "Alice", "in a")
	pb := addPost(t, s, b, "Bob", "in b")

	postsA, err := s.ListPosts(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []domain.PostId{pa.Id}, postIds(postsA))

	postsB, err := s.ListPosts(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []domain.PostId{pb.Id}, postIds(postsB))
}

func testPing(t *testing.T, s Storage) {
	assert.NoError(t, s.Ping(context.Background()))
}
