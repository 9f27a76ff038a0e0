// Package sqlite stores queues and posts in a SQLite database through the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/itchan-dev/ohqueue/internal/storage"
	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
	"github.com/itchan-dev/ohqueue/shared/logger"

	_ "modernc.org/sqlite"
)

type Storage struct {
	db *sql.DB
}

// New opens the database at dsn (a file path or a modernc "file:" URI)
// and brings the schema up to date.
func New(ctx context.Context, dsn string) (*Storage, error) {
	logger.Log.Info("opening sqlite database", "dsn", dsn)
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	// one connection serializes writers; in-memory databases also live
	// only as long as their connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Storage{db: db}, nil
}

func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)"
}

func (s *Storage) CreateQueue(ctx context.Context, id domain.QueueId) (domain.Queue, error) {
	created := storage.Now()
	// single statement: the primary key decides the race, not a prior SELECT
	res, err := s.db.ExecContext(ctx, `INSERT INTO queues(id, created) VALUES(?, ?) ON CONFLICT(id) DO NOTHING`, id, created.UnixMicro())
	if err != nil {
		return domain.Queue{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Queue{}, err
	}
	if n == 0 {
		return domain.Queue{}, fmt.Errorf("queue %s: %w", id, internal_errors.ErrAlreadyExists)
	}
	return domain.Queue{Id: id, CreatedAt: created}, nil
}

func (s *Storage) ListPosts(ctx context.Context, queueId domain.QueueId) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, queue_id, author_name, content, created
	FROM posts
	WHERE queue_id = ?
	ORDER BY created, id`, queueId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}

func (s *Storage) GetPost(ctx context.Context, queueId domain.QueueId, postId domain.PostId) (domain.Post, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, queue_id, author_name, content, created
	FROM posts
	WHERE queue_id = ? AND id = ?`, queueId, postId)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, fmt.Errorf("post %s/%d: %w", queueId, postId, internal_errors.ErrNotFound)
		}
		return domain.Post{}, err
	}
	return post, nil
}

func (s *Storage) AddPost(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	if err := storage.ValidatePost(data); err != nil {
		return domain.Post{}, err
	}

	created := storage.Now()
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO posts(queue_id, author_name, content, created)
	VALUES(?, ?, ?, ?)`,
		data.QueueId, data.AuthorName, data.Content, created.UnixMicro())
	if err != nil {
		return domain.Post{}, err
	}
	id, err := res.LastInsertId()
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE queue_id = ? AND id = ?`, queueId, postId)
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

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (domain.Post, error) {
	var (
		post    domain.Post
		created int64
	)
	if err := row.Scan(&post.Id, &post.QueueId, &post.AuthorName, &post.Content, &created); err != nil {
		return domain.Post{}, err
	}
	post.CreatedAt = time.UnixMicro(created).UTC()
	return post, nil
}
