package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/ohqueue/internal/storage"
	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
)

func (s *Storage) ListPosts(ctx context.Context, queueId domain.QueueId) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, queue_id, author_name, content, created
	FROM posts
	WHERE queue_id = $1
	ORDER BY created, id`, queueId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.Id, &post.QueueId, &post.AuthorName, &post.Content, &post.CreatedAt); err != nil {
			return nil, err
		}
		post.CreatedAt = post.CreatedAt.UTC()
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}

func (s *Storage) GetPost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) (domain.Post, error) {
	var post domain.Post
	err := s.db.QueryRowContext(ctx, `
	SELECT id, queue_id, author_name, content, created
	FROM posts
	WHERE queue_id = $1 AND id = $2`, queueId, postId).Scan(&post.Id, &post.QueueId, &post.AuthorName, &post.Content, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, fmt.Errorf("post %s/%d: %w", queueId, postId, internal_errors.ErrNotFound)
		}
		return domain.Post{}, err
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return post, nil
}

// AddPost saves the post. The queue row is not checked.
func (s *Storage) AddPost(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	if err := storage.ValidatePost(data); err != nil {
		return domain.Post{}, err
	}

	created := storage.Now()
	var id domain.PostId
	err := s.db.QueryRowContext(ctx, `
	INSERT INTO posts(queue_id, author_name, content, created)
	VALUES($1, $2, $3, $4)
	RETURNING id`,
		data.QueueId, data.AuthorName, data.Content, created).Scan(&id)
	if err != nil {
		return domain.Post{}, err
	}

	return domain.Post{
		Id:         id,
		QueueId:    data.QueueId,
		AuthorName: data.AuthorName,
		Content:    data.Content,
		CreatedAt:  created,
	}, nil
}

func (s *Storage) DeletePost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE queue_id = $1 AND id = $2`, queueId, postId)
	if err != nil {
		return err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("post %s/%d: %w", queueId, postId, internal_errors.ErrNotFound)
	}
	return nil
}
