package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogger/models"
	"blogger/monitoring"
	"blogger/repositories"
)

// FollowIndex lists posts by the authors the viewer follows.
func (h *Handler) FollowIndex(w http.ResponseWriter, r *http.Request) {
	filter := repositories.PostFilter{FollowerID: viewer(r).ID}
	page, err := h.repos.Posts.Page(r.Context(), filter, pageParam(r), h.postsPerPage)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "follow.html", &PageData{Page: page})
}

func (h *Handler) findAuthor(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	author, err := h.repos.Users.FindByUsername(r.Context(), mux.Vars(r)["username"])
	if errors.Is(err, repositories.ErrNotFound) {
		h.notFound(w, r)
		return nil, false
	}
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	return author, true
}

// ProfileFollow subscribes the viewer to an author. Following twice or
// following yourself changes nothing.
func (h *Handler) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	author, ok := h.findAuthor(w, r)
	if !ok {
		return
	}

	user := viewer(r)
	if user.ID != author.ID {
		created, err := h.repos.Follows.Follow(r.Context(), user.ID, author.ID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		if created {
			monitoring.Follows.WithLabelValues("follow").Inc()
			logrus.WithFields(logrus.Fields{"user": user.Username, "author": author.Username}).Info("Follow created")
		}
	}
	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}

func (h *Handler) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	author, ok := h.findAuthor(w, r)
	if !ok {
		return
	}

	user := viewer(r)
	removed, err := h.repos.Follows.Unfollow(r.Context(), user.ID, author.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if removed {
		monitoring.Follows.WithLabelValues("unfollow").Inc()
	}
	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}
