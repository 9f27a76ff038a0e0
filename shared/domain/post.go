package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	QueueId    QueueId
	AuthorName AuthorName
	Content    PostText
}

// PostDraft holds raw form values so an incomplete form can be shown again.
type PostDraft struct {
	AuthorName AuthorName
	Content    PostText
}

type Post struct {
	Id         PostId     `json:"id"`
	QueueId    QueueId    `json:"queue_id"`
	AuthorName AuthorName `json:"author_name"`
	Content    PostText   `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Before reports whether p comes ahead of other in queue order:
// earliest creation time first, id as tie-break.
func (p Post) Before(other Post) bool {
	if !p.CreatedAt.Equal(other.CreatedAt) {
		return p.CreatedAt.Before(other.CreatedAt)
	}
	return p.Id < other.Id
}
