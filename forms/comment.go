package forms

import (
	"net/http"
	"strings"
)

type CommentForm struct {
	Text string `form:"text" validate:"required"`

	Errors Errors `form:"-"`
}

func ParseCommentForm(r *http.Request) (*CommentForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &CommentForm{
		Text:   strings.TrimSpace(r.PostFormValue("text")),
		Errors: Errors{},
	}, nil
}

func (f *CommentForm) Validate() bool {
	f.Errors = check(f)
	return !f.Errors.Any()
}
