package api

import (
	"github.com/itchan-dev/ohqueue/shared/domain"
)

// Request DTOs

type CreateQueueRequest struct {
	Id string `json:"id" validate:"required"`
}

type CreatePostRequest struct {
	AuthorName string `json:"author_name" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Response DTOs

type QueueResponse struct {
	domain.Queue
}

// QueueViewResponse is a queue with its posts in display order.
type QueueViewResponse struct {
	Id    domain.QueueId `json:"id"`
	Posts []domain.Post  `json:"posts"`
}

type PostResponse struct {
	domain.Post
}
