package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"
)

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Errorf("request failed\n%s", debug.Stack())

	// the 500 page must not fail again through render
	buf := new(bytes.Buffer)
	if ts, ok := h.templates["500.html"]; ok {
		if err := ts.ExecuteTemplate(buf, "base", &PageData{Path: r.URL.Path}); err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			buf.WriteTo(w)
			return
		}
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404.html", nil)
}

func (h *Handler) forbidden(w http.ResponseWriter, r *http.Request, reason string) {
	h.render(w, r, http.StatusForbidden, "403.html", &PageData{Reason: reason})
}

// NotFound renders the 404 page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

// CSRFFailure renders the 403 page when gorilla/csrf rejects a request.
func (h *Handler) CSRFFailure(w http.ResponseWriter, r *http.Request) {
	reason := "CSRF verification failed."
	if err := csrf.FailureReason(r); err != nil {
		reason = fmt.Sprintf("CSRF verification failed: %s.", err)
	}
	logrus.WithField("path", r.URL.Path).Warn(reason)
	h.forbidden(w, r, reason)
}

// Recover turns a panic into a logged 500 response.
func (h *Handler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				w.Header().Set("Connection", "close")
				h.serverError(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
