package storage

import (
	"testing"
	"time"

	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		data    domain.PostCreationData
		wantErr bool
	}{
		{name: "valid", data: domain.PostCreationData{QueueId: "cs101", AuthorName: "Alice", Content: "help with loops"}},
		{name: "empty name", data: domain.PostCreationData{QueueId: "cs101", Content: "hi"}, wantErr: true},
		{name: "blank name", data: domain.PostCreationData{QueueId: "cs101", AuthorName: "  ", Content: "hi"}, wantErr: true},
		{name: "empty content", data: domain.PostCreationData{QueueId: "cs101", AuthorName: "Alice"}, wantErr: true},
		{name: "blank content", data: domain.PostCreationData{QueueId: "cs101", AuthorName: "Alice", Content: "\n\t"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePost(tt.data)
			if tt.wantErr {
				assert.True(t, internal_errors.Is[*internal_errors.ValidationError](err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNow(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%1000, "expected microsecond precision")
}
