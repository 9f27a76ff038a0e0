package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/ohqueue/internal/service"
	"github.com/itchan-dev/ohqueue/internal/storage/memory"
	shared_api "github.com/itchan-dev/ohqueue/shared/api"
	"github.com/itchan-dev/ohqueue/shared/domain"
	internal_errors "github.com/itchan-dev/ohqueue/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockQueueService struct {
	service.QueueService // unset methods panic

	MockCreateQueue func(ctx context.Context, rawId string) (domain.Queue, error)
	MockAddPost     func(ctx context.Context, queueId domain.QueueId, rawName, rawContent string) (domain.Post, error)
}

func (m *MockQueueService) CreateQueue(ctx context.Context, rawId string) (domain.Queue, error) {
	return m.MockCreateQueue(ctx, rawId)
}

func (m *MockQueueService) AddPost(ctx context.Context, queueId domain.QueueId, rawName, rawContent string) (domain.Post, error) {
	return m.MockAddPost(ctx, queueId, rawName, rawContent)
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/queues", h.CreateQueue)
	r.Get("/api/v1/queues/{queue:[a-zA-Z0-9_-]+}", h.GetQueue)
	r.Post("/api/v1/queues/{queue:[a-zA-Z0-9_-]+}/posts", h.CreatePost)
	r.Get("/api/v1/queues/{queue:[a-zA-Z0-9_-]+}/posts/{post:[0-9]+}", h.GetPost)
	r.Delete("/api/v1/queues/{queue:[a-zA-Z0-9_-]+}/posts/{post:[0-9]+}", h.DeletePost)
	return r
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateQueue(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	h := New(&MockQueueService{
		MockCreateQueue: func(ctx context.Context, rawId string) (domain.Queue, error) {
			if rawId == "taken" {
				return domain.Queue{}, &internal_errors.ErrorWithStatusCode{Message: "This office hours id already exists.", StatusCode: http.StatusConflict, Err: internal_errors.ErrDuplicateIdentifier}
			}
			if rawId == "broken" {
				return domain.Queue{}, errors.New("disk full")
			}
			return domain.Queue{Id: rawId, CreatedAt: created}, nil
		},
	})
	router := newTestRouter(h)

	t.Run("created", func(t *testing.T) {
		rr := do(t, router, http.MethodPost, "/api/v1/queues", `{"id":"cs101"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp shared_api.QueueResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, domain.QueueId("cs101"), resp.Id)
		assert.True(t, created.Equal(resp.CreatedAt))
	})

	testCases := []struct {
		name   string
		body   string
		status int
	}{
		{name: "invalid json", body: `{ivalid json::}`, status: http.StatusBadRequest},
		{name: "missing id", body: `{}`, status: http.StatusBadRequest},
		{name: "duplicate", body: `{"id":"taken"}`, status: http.StatusConflict},
		{name: "storage failure", body: `{"id":"broken"}`, status: http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, router, http.MethodPost, "/api/v1/queues", tc.body)
			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestCreatePostValidation(t *testing.T) {
	calls := 0
	h := New(&MockQueueService{
		MockAddPost: func(ctx context.Context, queueId domain.QueueId, rawName, rawContent string) (domain.Post, error) {
			calls++
			return domain.Post{}, &service.MissingFieldsError{Draft: domain.PostDraft{AuthorName: rawName, Content: rawContent}}
		},
	})
	router := newTestRouter(h)

	rr := do(t, router, http.MethodPost, "/api/v1/queues/cs101/posts", `{"author_name":"Carol"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, calls, "empty json field is rejected before the service")

	rr = do(t, router, http.MethodPost, "/api/v1/queues/cs101/posts", `{"author_name":"Carol","content":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "You need both a name and some content.")
	assert.Equal(t, 1, calls)
}

func TestOfficeHoursAPI(t *testing.T) {
	router := newTestRouter(New(service.NewQueue(memory.New())))

	rr := do(t, router, http.MethodPost, "/api/v1/queues", `{"id":"cs101"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/v1/queues", `{"id":"cs101"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/queues/cs101", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":"cs101","posts":[]}`, rr.Body.String())

	var alice, bob shared_api.PostResponse
	rr = do(t, router, http.MethodPost, "/api/v1/queues/cs101/posts", `{"author_name":"Alice","content":"help with loops"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&alice))
	rr = do(t, router, http.MethodPost, "/api/v1/queues/cs101/posts", `{"author_name":"Bob","content":"segfault in hw2"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&bob))
	assert.Equal(t, domain.PostId(1), alice.Id)
	assert.Equal(t, domain.PostId(2), bob.Id)

	rr = do(t, router, http.MethodGet, "/api/v1/queues/cs101/posts/2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got shared_api.PostResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "segfault in hw2", got.Content)

	rr = do(t, router, http.MethodDelete, "/api/v1/queues/other/posts/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code, "posts are scoped to their queue")

	rr = do(t, router, http.MethodDelete, "/api/v1/queues/cs101/posts/1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, router, http.MethodDelete, "/api/v1/queues/cs101/posts/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/queues/cs101", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var view shared_api.QueueViewResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	require.Len(t, view.Posts, 1)
	assert.Equal(t, "Bob", view.Posts[0].AuthorName)
}
