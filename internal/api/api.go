// Package api serves the JSON API under /api/v1.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/ohqueue/internal/service"
	shared_api "github.com/itchan-dev/ohqueue/shared/api"
	"github.com/itchan-dev/ohqueue/shared/domain"
	"github.com/itchan-dev/ohqueue/shared/utils"
)

type Handler struct {
	queue service.QueueService
}

func New(queue service.QueueService) *Handler {
	return &Handler{queue: queue}
}

func (h *Handler) CreateQueue(w http.ResponseWriter, r *http.Request) {
	var body shared_api.CreateQueueRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	queue, err := h.queue.CreateQueue(r.Context(), body.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, shared_api.QueueResponse{Queue: queue})
}

func (h *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")

	posts, err := h.queue.ViewQueue(r.Context(), queueId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, shared_api.QueueViewResponse{Id: queueId, Posts: posts})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")
	var body shared_api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.queue.AddPost(r.Context(), queueId, body.AuthorName, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, shared_api.PostResponse{Post: post})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")
	postId, ok := postIdParam(w, r)
	if !ok {
		return
	}

	post, err := h.queue.ViewPost(r.Context(), queueId, postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, shared_api.PostResponse{Post: post})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	queueId := chi.URLParam(r, "queue")
	postId, ok := postIdParam(w, r)
	if !ok {
		return
	}

	if err := h.queue.DeletePost(r.Context(), queueId, postId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func postIdParam(w http.ResponseWriter, r *http.Request) (domain.PostId, bool) {
	postId, err := strconv.ParseInt(chi.URLParam(r, "post"), 10, 64)
	if err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return 0, false
	}
	return postId, true
}
