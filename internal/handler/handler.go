package handler

import (
	"context"
	"html/template"

	"github.com/itchan-dev/ohqueue/internal/markdown"
	"github.com/itchan-dev/ohqueue/internal/service"
)

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the HTML pages and the operational endpoints.
type Handler struct {
	Templates     map[string]*template.Template
	Queue         service.QueueService
	TextProcessor *markdown.TextProcessor
	Store         Pinger
}

func New(templates map[string]*template.Template, queue service.QueueService, textProcessor *markdown.TextProcessor, store Pinger) *Handler {
	return &Handler{
		Templates:     templates,
		Queue:         queue,
		TextProcessor: textProcessor,
		Store:         store,
	}
}
