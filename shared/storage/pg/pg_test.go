package pg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/itchan-dev/ohqueue/shared/config"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	cfg := config.Pg{Host: "db", Port: 5432, User: "ohqueue", Password: "secret", Dbname: "queues"}

	assert.Equal(t, "host=db port=5432 user=ohqueue password=secret dbname=queues sslmode=disable", ConnString(cfg))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert queue: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key")))
	assert.False(t, IsUniqueViolation(nil))
}
