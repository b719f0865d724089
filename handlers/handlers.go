// Package handlers renders the HTML pages of the blog.
package handlers

import (
	"html/template"
	"net/http"

	"github.com/gorilla/sessions"

	"blogger/media"
	"blogger/repositories"
)

// Options holds the tunables of the views.
type Options struct {
	PostsPerPage   int
	MaxUploadBytes int64
}

type Handler struct {
	repos     *repositories.Repositories
	media     media.Store
	sessions  sessions.Store
	templates map[string]*template.Template

	postsPerPage   int
	maxUploadBytes int64
}

func NewHandler(repos *repositories.Repositories, store media.Store, sessionStore sessions.Store, opts Options) (*Handler, error) {
	if opts.PostsPerPage < 1 {
		opts.PostsPerPage = 10
	}
	if opts.MaxUploadBytes < 1 {
		opts.MaxUploadBytes = 5 << 20
	}

	h := &Handler{
		repos:          repos,
		media:          store,
		sessions:       sessionStore,
		postsPerPage:   opts.PostsPerPage,
		maxUploadBytes: opts.MaxUploadBytes,
	}
	templates, err := parseTemplates(h.templateFuncs())
	if err != nil {
		return nil, err
	}
	h.templates = templates
	return h, nil
}

// IndexCacheKey keys the cached index page by URI and viewer, so each page
// number is stored apart and no user sees another's navigation bar.
func IndexCacheKey(r *http.Request) string {
	return "index_page:" + r.URL.RequestURI() + ":" + ViewerKey(r)
}
