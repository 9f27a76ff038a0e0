package domain

type (
	QueueId    = string
	PostId     = int64
	AuthorName = string
	PostText   = string
)
