package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/ohqueue/internal/middleware"
	"github.com/itchan-dev/ohqueue/internal/setup"
	mw "github.com/itchan-dev/ohqueue/shared/middleware"
	"github.com/itchan-dev/ohqueue/shared/middleware/metrics"
)

const (
	queueParam = "{queue:[a-zA-Z0-9_-]+}"
	postParam  = "{post:[0-9]+}"
)

// New builds the chi router with the HTML pages, the JSON API and the probes.
func New(deps *setup.Dependencies) http.Handler {
	public := deps.Config.Public
	h := deps.Handler
	a := deps.API

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.NotFound(mw.SecurityHeaders(public.SecureCookies, mw.PageCSP)(http.HandlerFunc(h.NotFound)).ServeHTTP)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: public.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		r.Use(mw.SecurityHeaders(public.SecureCookies, mw.APICSP))
		r.NotFound(http.NotFound)

		r.Post("/queues", a.CreateQueue)
		r.Get("/queues/"+queueParam, a.GetQueue)
		r.Post("/queues/"+queueParam+"/posts", a.CreatePost)
		r.Get("/queues/"+queueParam+"/posts/"+postParam, a.GetPost)
		r.Delete("/queues/"+queueParam+"/posts/"+postParam, a.DeletePost)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.SecurityHeaders(public.SecureCookies, mw.PageCSP))
		r.Use(middleware.GenerateCSRFToken(middleware.CSRFConfig{SecureCookies: public.SecureCookies}))
		r.Use(middleware.ValidateCSRFToken())

		r.Get("/", h.NewQueueGetHandler)
		r.Post("/", h.NewQueuePostHandler)
		r.Route("/"+queueParam, func(r chi.Router) {
			r.Get("/", h.QueueGetHandler)
			r.Get("/newpost", h.NewPostGetHandler)
			r.Post("/newpost", h.NewPostPostHandler)
			r.Get("/"+postParam, h.PostGetHandler)
			// deletion stays a plain link from the queue page
			r.Get("/"+postParam+"/delete", h.PostDeleteHandler)
		})
	})

	return r
}
