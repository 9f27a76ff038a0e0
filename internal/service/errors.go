package service

import (
	"net/http"

	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
)

const missingFieldsMessage = "You need both a name and some content."

// MissingFieldsError is returned by AddPost when the name or the content is blank.
// Draft keeps what was submitted so the form can be shown again.
type MissingFieldsError struct {
	Draft domain.PostDraft
}

func (e *MissingFieldsError) Error() string {
	return missingFieldsMessage
}

func (e *MissingFieldsError) Unwrap() error {
	return &internal_errors.ErrorWithStatusCode{Message: missingFieldsMessage, StatusCode: http.StatusBadRequest, Err: internal_errors.ErrMissingFields}
}
