package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/ohqueue/internal/service"
	"github.com/itchan-dev/ohqueue/shared/domain"
)

func (h *Handler) NewPostGetHandler(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")
	h.renderTemplate(w, r, "newpost.html", NewPostPage{QueueId: queueId})
}

func (h *Handler) NewPostPostHandler(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")

	_, err := h.Queue.AddPost(r.Context(), queueId, r.PostFormValue(nameField), r.PostFormValue(contentField))
	if err != nil {
		var missing *service.MissingFieldsError
		if errors.As(err, &missing) {
			h.renderTemplateWithError(w, r, http.StatusBadRequest, "newpost.html", NewPostPage{QueueId: queueId, Draft: missing.Draft}, missing.Error())
			return
		}
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, queuePath(queueId), http.StatusSeeOther)
}

func (h *Handler) PostGetHandler(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")
	postId, ok := h.postIdParam(w, r)
	if !ok {
		return
	}

	post, err := h.Queue.ViewPost(r.Context(), queueId, postId)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.renderTemplate(w, r, "post.html", PostPage{QueueId: queueId, Post: post, Content: h.TextProcessor.Render(post.Content)})
}

// PostDeleteHandler removes a post and returns to the queue page.
func (h *Handler) PostDeleteHandler(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")
	postId, ok := h.postIdParam(w, r)
	if !ok {
		return
	}

	if err := h.Queue.DeletePost(r.Context(), queueId, postId); err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, queuePath(queueId), http.StatusSeeOther)
}

// postIdParam parses the {post} segment; digits that overflow int64 name no post.
func (h *Handler) postIdParam(w http.ResponseWriter, r *http.Request) (domain.PostId, bool) {
	postId, err := strconv.ParseInt(chi.URLParam(r, "post"), 10, 64)
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "Post not found")
		return 0, false
	}
	return postId, true
}
