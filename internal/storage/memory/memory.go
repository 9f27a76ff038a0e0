// Package memory is an in-process storage backend for development and tests.
// Nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/itchan-dev/ohqueue/internal/storage"
	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
)

type Storage struct {
	mu     sync.RWMutex
	queues map[domain.QueueId]domain.Queue
	posts  map[domain.QueueId]map[domain.PostId]domain.Post
	lastId domain.PostId
}

func New() *Storage {
	return &Storage{
		queues: make(map[domain.QueueId]domain.Queue),
		posts:  make(map[domain.QueueId]map[domain.PostId]domain.Post),
	}
}

func (s *Storage) CreateQueue(ctx context.Context, id domain.QueueId) (domain.Queue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.queues[id]; ok {
		return domain.Queue{}, fmt.Errorf("queue %s: %w", id, internal_errors.ErrAlreadyExists)
	}
	queue := domain.Queue{Id: id, CreatedAt: storage.Now()}
	s.queues[id] = queue
	return queue, nil
}

func (s *Storage) ListPosts(ctx context.Context, queueId domain.QueueId) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]domain.Post, 0, len(s.posts[queueId]))
	for _, p := range s.posts[queueId] {
		posts = append(posts, p)
	}
	slices.SortFunc(posts, func(a, b domain.Post) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
	return posts, nil
}

func (s *Storage) GetPost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[queueId][postId]
	if !ok {
		return domain.Post{}, fmt.Errorf("post %s/%d: %w", queueId, postId, internal_errors.ErrNotFound)
	}
	return post, nil
}

func (s *Storage) AddPost(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	if err := storage.ValidatePost(data); err != nil {
		return domain.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastId++
	post := domain.Post{
		Id:         s.lastId,
		QueueId:    data.QueueId,
		AuthorName: data.AuthorName,
		Content:    data.Content,
		CreatedAt:  storage.Now(),
	}
	if s.posts[data.QueueId] == nil {
		s.posts[data.QueueId] = make(map[domain.PostId]domain.Post)
	}
	s.posts[data.QueueId][post.Id] = post
	return post, nil
}

func (s *Storage) DeletePost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[queueId][postId]; !ok {
		return fmt.Errorf("post %s/%d: %w", queueId, postId, internal_errors.ErrNotFound)
	}
	delete(s.posts[queueId], postId)
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Cleanup() error {
	return nil
}
