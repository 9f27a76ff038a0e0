package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
	"github.com/itchan-dev/ohqueue/shared/logger"
)

const (
	queueIdField = "office_hours_id"
	nameField    = "name"
	contentField = "content"
)

func (h *Handler) NewQueueGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "newqueue.html", NewQueuePage{})
}

func (h *Handler) NewQueuePostHandler(w http.ResponseWriter, r *http.Request) {
	rawId := r.PostFormValue(queueIdField)

	queue, err := h.Queue.CreateQueue(r.Context(), rawId)
	if err != nil {
		var e *internal_errors.ErrorWithStatusCode
		if errors.As(err, &e) {
			h.renderTemplateWithError(w, r, e.StatusCode, "newqueue.html", NewQueuePage{QueueId: rawId}, e.Message)
			return
		}
		h.internalError(w, r, err)
		return
	}

	http.Redirect(w, r, queuePath(queue.Id), http.StatusSeeOther)
}

func (h *Handler) QueueGetHandler(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")

	posts, err := h.Queue.ViewQueue(r.Context(), queueId)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.renderTemplate(w, r, "queue.html", QueuePage{QueueId: queueId, Posts: posts})
}

// handleError renders the error page for err with its status code.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) {
		h.renderError(w, r, e.StatusCode, e.Message)
		return
	}
	h.internalError(w, r, err)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Log.Error("internal error", "path", r.URL.Path, "error", err)
	h.renderError(w, r, http.StatusInternalServerError, "Internal server error")
}

func queuePath(id domain.QueueId) string {
	return "/" + url.PathEscape(id)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found")
}
