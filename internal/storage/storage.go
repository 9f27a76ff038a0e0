// Package storage holds rules shared by every storage backend.
package storage

import (
	"strings"
	"time"

	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
)

// ValidatePost checks the field constraints every backend enforces on AddPost.
func ValidatePost(data domain.PostCreationData) error {
	if strings.TrimSpace(data.AuthorName) == "" {
		return &internal_errors.ValidationError{Message: "author name is empty"}
	}
	if strings.TrimSpace(data.Content) == "" {
		return &internal_errors.ValidationError{Message: "content is empty"}
	}
	return nil
}

// Now returns the creation timestamp for new records.
// Postgres keeps microseconds, so every backend rounds the same way.
func Now() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}
