package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/itchan-dev/ohqueue/internal/middleware"
	"github.com/itchan-dev/ohqueue/shared/domain"
	"github.com/itchan-dev/ohqueue/shared/logger"
)

// CommonTemplateData is available to every page as .Common.
type CommonTemplateData struct {
	Error     string
	CSRFToken string
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

type NewQueuePage struct {
	QueueId string
}

type QueuePage struct {
	QueueId domain.QueueId
	Posts   []domain.Post
}

type NewPostPage struct {
	QueueId domain.QueueId
	Draft   domain.PostDraft
}

type PostPage struct {
	QueueId domain.QueueId
	Post    domain.Post
	Content template.HTML
}

type ErrorPage struct {
	StatusCode int
	Message    string
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, http.StatusOK, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, status int, name string, data any, errMsg string) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data: data,
		Common: CommonTemplateData{
			Error:     errMsg,
			CSRFToken: middleware.GetCSRFTokenFromContext(r),
		},
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.renderTemplateWithError(w, r, status, "error.html", ErrorPage{StatusCode: status, Message: message}, "")
}
