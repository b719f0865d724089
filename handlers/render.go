package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/gorilla/csrf"

	"blogger/forms"
	"blogger/models"
	"blogger/paginator"
)

//go:embed templates
var templateFS embed.FS

// PageData is the context of every page template.
type PageData struct {
	Path      string
	User      *models.User
	CSRFField template.HTML

	Page      *paginator.Page[models.Post]
	Group     *models.Group
	Author    *models.User
	PostCount int64
	Following bool
	Post      *models.Post
	Comments  []models.Comment
	Groups    []models.Group

	Form   interface{}
	Errors forms.Errors
	IsEdit bool
	Next   string
	Reason string
}

// parseTemplates builds one template set per page: the layout, the partials
// and the page itself.
func parseTemplates(funcs template.FuncMap) (map[string]*template.Template, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	sets := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		ts, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/base.html", "templates/partials/*.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		sets[name] = ts
	}
	return sets, nil
}

func (h *Handler) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"mediaURL": h.media.URL,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2 January 2006")
		},
	}
}

// render executes page into a buffer first so a template error never leaves
// a half-written response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data *PageData) {
	if data == nil {
		data = &PageData{}
	}
	data.Path = r.URL.Path
	data.User = viewer(r)
	data.CSRFField = csrf.TemplateField(r)

	ts, ok := h.templates[page]
	if !ok {
		h.serverError(w, r, fmt.Errorf("template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		h.serverError(w, r, fmt.Errorf("render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
