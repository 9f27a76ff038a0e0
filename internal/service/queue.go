package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
	"github.com/itchan-dev/ohqueue/shared/logger"
)

// to mock service in tests
type QueueService interface {
	CreateQueue(ctx context.Context, rawId string) (domain.Queue, error)
	AddPost(ctx context.Context, queueId domain.QueueId, rawName, rawContent string) (domain.Post, error)
	ViewQueue(ctx context.Context, queueId domain.QueueId) ([]domain.Post, error)
	ViewPost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) (domain.Post, error)
	DeletePost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) error
}

// Storage is the storage engine contract. Every post operation is scoped by queue id.
type Storage interface {
	CreateQueue(ctx context.Context, id domain.QueueId) (domain.Queue, error)
	ListPosts(ctx context.Context, queueId domain.QueueId) ([]domain.Post, error)
	GetPost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) (domain.Post, error)
	AddPost(ctx context.Context, data domain.PostCreationData) (domain.Post, error)
	DeletePost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) error
}

type Queue struct {
	storage Storage
}

func NewQueue(storage Storage) *Queue {
	return &Queue{storage: storage}
}

func (q *Queue) CreateQueue(ctx context.Context, rawId string) (domain.Queue, error) {
	id := strings.TrimSpace(rawId)
	if id == "" {
		return domain.Queue{}, &internal_errors.ErrorWithStatusCode{Message: "Office hours id cannot be empty.", StatusCode: http.StatusBadRequest, Err: internal_errors.ErrEmptyIdentifier}
	}
	if err := validateQueueId(id); err != nil {
		return domain.Queue{}, err
	}
	if domain.IsReservedQueueId(id) {
		return domain.Queue{}, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Office hours id %q is reserved.", id), StatusCode: http.StatusBadRequest, Err: internal_errors.ErrInvalidIdentifier}
	}

	queue, err := q.storage.CreateQueue(ctx, id)
	if err != nil {
		if errors.Is(err, internal_errors.ErrAlreadyExists) {
			return domain.Queue{}, &internal_errors.ErrorWithStatusCode{Message: "This office hours id already exists.", StatusCode: http.StatusConflict, Err: internal_errors.ErrDuplicateIdentifier}
		}
		return domain.Queue{}, fmt.Errorf("create queue %s: %w", id, err)
	}

	queuesCreated.Inc()
	logger.Log.Info("queue created", "queue", id)
	return queue, nil
}

func (q *Queue) AddPost(ctx context.Context, queueId domain.QueueId, rawName, rawContent string) (domain.Post, error) {
	if err := validateQueueId(queueId); err != nil {
		return domain.Post{}, err
	}
	name := strings.TrimSpace(rawName)
	if name == "" || strings.TrimSpace(rawContent) == "" {
		return domain.Post{}, &MissingFieldsError{Draft: domain.PostDraft{AuthorName: rawName, Content: rawContent}}
	}

	post, err := q.storage.AddPost(ctx, domain.PostCreationData{QueueId: queueId, AuthorName: name, Content: rawContent})
	if err != nil {
		if internal_errors.Is[*internal_errors.ValidationError](err) {
			return domain.Post{}, &MissingFieldsError{Draft: domain.PostDraft{AuthorName: rawName, Content: rawContent}}
		}
		return domain.Post{}, fmt.Errorf("add post to %s: %w", queueId, err)
	}

	postsCreated.Inc()
	logger.Log.Debug("post added", "queue", queueId, "post", post.Id)
	return post, nil
}

func (q *Queue) ViewQueue(ctx context.Context, queueId domain.QueueId) ([]domain.Post, error) {
	if err := validateQueueId(queueId); err != nil {
		return nil, err
	}
	posts, err := q.storage.ListPosts(ctx, queueId)
	if err != nil {
		return nil, fmt.Errorf("list posts of %s: %w", queueId, err)
	}
	return posts, nil
}

func (q *Queue) ViewPost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) (domain.Post, error) {
	if err := validateQueueId(queueId); err != nil {
		return domain.Post{}, err
	}
	post, err := q.storage.GetPost(ctx, queueId, postId)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return domain.Post{}, postNotFound()
		}
		return domain.Post{}, fmt.Errorf("get post %s/%d: %w", queueId, postId, err)
	}
	return post, nil
}

func (q *Queue) DeletePost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) error {
	if err := validateQueueId(queueId); err != nil {
		return err
	}
	if err := q.storage.DeletePost(ctx, queueId, postId); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return postNotFound()
		}
		return fmt.Errorf("delete post %s/%d: %w", queueId, postId, err)
	}

	postsDeleted.Inc()
	logger.Log.Debug("post deleted", "queue", queueId, "post", postId)
	return nil
}

func validateQueueId(id domain.QueueId) error {
	if !domain.ValidQueueId(id) {
		return &internal_errors.ErrorWithStatusCode{Message: "Office hours id may only contain letters, digits, '_' and '-'.", StatusCode: http.StatusBadRequest, Err: internal_errors.ErrInvalidIdentifier}
	}
	return nil
}

func postNotFound() error {
	return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound, Err: internal_errors.ErrNotFound}
}
