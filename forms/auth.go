package forms

import (
	"fmt"
	"net/http"
	"strings"
)

// maxPasswordBytes is the longest input bcrypt hashes.
const maxPasswordBytes = 72

type SignupForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Password  string `form:"password1" validate:"required,min=8,max=72"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`

	Errors Errors `form:"-"`
}

func ParseSignupForm(r *http.Request) (*SignupForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &SignupForm{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
		Errors:    Errors{},
	}, nil
}

func (f *SignupForm) Validate() bool {
	f.Errors = check(f)
	// max counts characters; multi-byte passwords can still overflow bcrypt
	if len(f.Password) > maxPasswordBytes && !f.Errors.Has("password1") {
		f.Errors.Add("password1", fmt.Sprintf("Ensure this value has at most %d bytes.", maxPasswordBytes))
	}
	return !f.Errors.Any()
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`

	Errors Errors `form:"-"`
}

func ParseLoginForm(r *http.Request) (*LoginForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Errors:   Errors{},
	}, nil
}

func (f *LoginForm) Validate() bool {
	f.Errors = check(f)
	return !f.Errors.Any()
}
