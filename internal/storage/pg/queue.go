package pg

import (
	"context"
	"fmt"

	"github.com/itchan-dev/ohqueue/internal/storage"
	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
	sharedpg "github.com/itchan-dev/ohqueue/shared/storage/pg"
)

func (s *Storage) CreateQueue(ctx context.Context, id domain.QueueId) (domain.Queue, error) {
	created := storage.Now()
	_, err := s.db.ExecContext(ctx, `INSERT INTO queues(id, created) VALUES($1, $2)`, id, created)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return domain.Queue{}, fmt.Errorf("queue %s: %w", id, internal_errors.ErrAlreadyExists)
		}
		return domain.Queue{}, err
	}
	return domain.Queue{Id: id, CreatedAt: created}, nil
}
