package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/itchan-dev/ohqueue/internal/middleware"
	"github.com/itchan-dev/ohqueue/internal/setup"
	"github.com/itchan-dev/ohqueue/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{Public: config.Public{
		AllowedOrigins: []string{"http://localhost:3000"},
		Storage:        config.Storage{Driver: config.DriverMemory},
	}}
	deps, err := setup.SetupDependencies(context.Background(), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(New(deps))
	t.Cleanup(srv.Close)
	return srv
}

// noRedirect keeps 303 responses visible to the test.
func noRedirect(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}

func TestProbes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ohqueue_http_requests_total")
}

func TestPagesRequireCSRFToken(t *testing.T) {
	srv := newTestServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))

	var token string
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CSRFCookieName {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	t.Run("without token", func(t *testing.T) {
		resp, err := client.PostForm(srv.URL+"/", url.Values{"office_hours_id": {"cs101"}})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("with token", func(t *testing.T) {
		form := url.Values{"office_hours_id": {"cs101"}, middleware.CSRFFormField: {token}}
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: token})

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/cs101", resp.Header.Get("Location"))
	})
}

func TestAPIRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/queues", "application/json", strings.NewReader(`{"id":"cs101"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "api is not behind csrf")
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", resp.Header.Get("Content-Security-Policy"))

	t.Run("cors preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/queues", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown api path is plain 404", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/nothing")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.NotContains(t, resp.Header.Get("Content-Type"), "text/html")
	})
}

func TestUnknownPage(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/cs101/not-a-post")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "Page not found")
}
