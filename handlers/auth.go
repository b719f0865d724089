package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"blogger/forms"
	"blogger/models"
	"blogger/monitoring"
	"blogger/repositories"
)

const (
	sessionName   = "blogger_session"
	sessionUserID = "user_id"
	loginURL      = "/auth/login/"
)

type contextKey int

const userKey contextKey = iota

func withViewer(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// viewer returns the signed in user of r, or nil for a guest.
func viewer(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// ViewerKey identifies the viewer of r in cache keys.
func ViewerKey(r *http.Request) string {
	if user := viewer(r); user != nil {
		return strconv.FormatUint(uint64(user.ID), 10)
	}
	return "anon"
}

// Authenticate loads the session user into the request context. Unknown or
// stale sessions are treated as guests.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := h.sessions.Get(r, sessionName)
		if err != nil {
			logrus.WithError(err).Debug("Discarding unreadable session")
		}
		if session == nil {
			next.ServeHTTP(w, r)
			return
		}
		id, ok := session.Values[sessionUserID].(uint)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.repos.Users.FindByID(r.Context(), id)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				logrus.WithError(err).WithField("user_id", id).Error("Failed to load session user")
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), user)))
	})
}

// LoginRequired redirects guests to the login page, remembering where they
// were going.
func (h *Handler) LoginRequired(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if viewer(r) == nil {
			target := loginURL + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, redirectStatus(r))
			return
		}
		next(w, r)
	}
}

// redirectStatus is 303 after a POST so the browser follows with a GET.
func redirectStatus(r *http.Request) int {
	if r.Method == http.MethodPost {
		return http.StatusSeeOther
	}
	return http.StatusFound
}

// safeNext accepts only local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, _ := h.sessions.Get(r, sessionName)
	session.Values[sessionUserID] = user.ID
	return session.Save(r, w)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "signup.html", &PageData{Form: &forms.SignupForm{}})
		return
	}

	form, err := forms.ParseSignupForm(r)
	if err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	if !form.Validate() {
		h.render(w, r, http.StatusOK, "signup.html", &PageData{Form: form, Errors: form.Errors})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	user := &models.User{Username: form.Username, Email: form.Email, PwHash: string(hash)}
	if err := h.repos.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			form.Errors.Add("username", "A user with that username already exists.")
			h.render(w, r, http.StatusOK, "signup.html", &PageData{Form: form, Errors: form.Errors})
			return
		}
		h.serverError(w, r, err)
		return
	}

	monitoring.RegisterSuccess.Inc()
	logrus.WithField("username", user.Username).Info("User registered")

	if err := h.startSession(w, r, user); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "login.html", &PageData{
			Form: &forms.LoginForm{},
			Next: r.URL.Query().Get("next"),
		})
		return
	}

	form, err := forms.ParseLoginForm(r)
	if err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	next := r.PostFormValue("next")
	invalid := func(reason string) {
		monitoring.LoginFailure.WithLabelValues(reason).Inc()
		h.render(w, r, http.StatusOK, "login.html", &PageData{Form: form, Errors: form.Errors, Next: next})
	}

	if !form.Validate() {
		invalid("invalid_form")
		return
	}

	user, err := h.repos.Users.FindByUsername(r.Context(), form.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		form.Errors.Add("", "Please enter a correct username and password.")
		invalid("unknown_user")
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PwHash), []byte(form.Password)); err != nil {
		form.Errors.Add("", "Please enter a correct username and password.")
		invalid("wrong_password")
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		h.serverError(w, r, err)
		return
	}
	monitoring.LoginSuccess.Inc()
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessions.Get(r, sessionName)
	delete(session.Values, sessionUserID)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.serverError(w, r, err)
		return
	}

	r = r.WithContext(withViewer(r.Context(), nil))
	h.render(w, r, http.StatusOK, "logged_out.html", nil)
}

// NewCookieStore returns the session store used in production. secure marks
// the cookie HTTPS only.
func NewCookieStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
