package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogger/forms"
	"blogger/models"
	"blogger/monitoring"
	"blogger/repositories"
)

func pageParam(r *http.Request) string {
	return r.URL.Query().Get("page")
}

// postID reads the {id} route variable. The route pattern only admits
// digits, so a parse failure means the id is out of range.
func postID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.repos.Posts.Page(r.Context(), repositories.PostFilter{}, pageParam(r), h.postsPerPage)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "index.html", &PageData{Page: page})
}

func (h *Handler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, err := h.repos.Groups.FindBySlug(r.Context(), mux.Vars(r)["slug"])
	if errors.Is(err, repositories.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	page, err := h.repos.Posts.Page(r.Context(), repositories.PostFilter{GroupID: group.ID}, pageParam(r), h.postsPerPage)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "group.html", &PageData{Group: group, Page: page})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	author, err := h.repos.Users.FindByUsername(r.Context(), mux.Vars(r)["username"])
	if errors.Is(err, repositories.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	page, err := h.repos.Posts.Page(r.Context(), repositories.PostFilter{AuthorID: author.ID}, pageParam(r), h.postsPerPage)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	following := false
	if user := viewer(r); user != nil && user.ID != author.ID {
		following, err = h.repos.Follows.IsFollowing(r.Context(), user.ID, author.ID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	h.render(w, r, http.StatusOK, "profile.html", &PageData{
		Author:    author,
		Page:      page,
		PostCount: page.Paginator.Count,
		Following: following,
	})
}

func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	post, ok := h.findPost(w, r)
	if !ok {
		return
	}

	comments, err := h.repos.Comments.ListByPost(r.Context(), post.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	count, err := h.repos.Posts.Count(r.Context(), repositories.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post_detail.html", &PageData{
		Post:      post,
		Comments:  comments,
		PostCount: count,
		Form:      &forms.CommentForm{},
	})
}

// findPost loads the post named by the route and writes the 404 or 500 page
// when it cannot.
func (h *Handler) findPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, ok := postID(r)
	if !ok {
		h.notFound(w, r)
		return nil, false
	}
	post, err := h.repos.Posts.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		h.notFound(w, r)
		return nil, false
	}
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	return post, true
}

func (h *Handler) groupExists(ctx context.Context) func(id uint) bool {
	return func(id uint) bool {
		_, err := h.repos.Groups.FindByID(ctx, id)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			logrus.WithError(err).WithField("group_id", id).Error("Failed to look up group")
		}
		return err == nil
	}
}

func (h *Handler) renderPostForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, isEdit bool) {
	groups, err := h.repos.Groups.All(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "create_post.html", &PageData{
		Form:   form,
		Errors: form.Errors,
		Groups: groups,
		IsEdit: isEdit,
	})
}

// bindPostForm parses and validates the submitted post form. It returns nil
// once the response has been written.
func (h *Handler) bindPostForm(w http.ResponseWriter, r *http.Request, isEdit bool) *forms.PostForm {
	form, err := forms.ParsePostForm(w, r, h.maxUploadBytes)
	if err != nil {
		logrus.WithError(err).Warn("Rejected post form")
		if forms.IsTooLarge(err) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return nil
		}
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return nil
	}
	if !form.Validate(h.maxUploadBytes, h.groupExists(r.Context())) {
		h.renderPostForm(w, r, form, isEdit)
		return nil
	}
	return form
}

// saveImage stores the uploaded image of form and returns its key, or "" when
// nothing was uploaded.
func (h *Handler) saveImage(ctx context.Context, form *forms.PostForm) (string, error) {
	if form.Image == nil {
		return "", nil
	}
	key, err := h.media.Save(ctx, form.Image.Filename, form.Image.ContentType, form.Image.Reader())
	if err != nil {
		return "", fmt.Errorf("save image %q: %w", form.Image.Filename, err)
	}
	return key, nil
}

func (h *Handler) deleteImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := h.media.Delete(ctx, key); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Failed to delete image")
	}
}

func (h *Handler) PostCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderPostForm(w, r, &forms.PostForm{}, false)
		return
	}

	form := h.bindPostForm(w, r, false)
	if form == nil {
		return
	}
	groupID, _ := form.GroupID()
	image, err := h.saveImage(r.Context(), form)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	user := viewer(r)
	post := &models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := h.repos.Posts.Create(r.Context(), post); err != nil {
		h.deleteImage(r.Context(), image)
		h.serverError(w, r, err)
		return
	}

	monitoring.PostsCreated.Inc()
	logrus.WithFields(logrus.Fields{"post_id": post.ID, "author": user.Username}).Info("Post created")
	http.Redirect(w, r, profileURL(user.Username), http.StatusSeeOther)
}

func (h *Handler) PostEdit(w http.ResponseWriter, r *http.Request) {
	post, ok := h.findPost(w, r)
	if !ok {
		return
	}
	if post.AuthorID != viewer(r).ID {
		http.Redirect(w, r, postURL(post.ID), redirectStatus(r))
		return
	}

	if r.Method == http.MethodGet {
		form := &forms.PostForm{Text: post.Text}
		if post.GroupID != nil {
			form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
		}
		h.renderPostForm(w, r, form, true)
		return
	}

	form := h.bindPostForm(w, r, true)
	if form == nil {
		return
	}
	groupID, _ := form.GroupID()
	image, err := h.saveImage(r.Context(), form)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	oldImage := post.Image
	post.Text = form.Text
	post.GroupID = groupID
	if image != "" {
		post.Image = image
	}
	if err := h.repos.Posts.Update(r.Context(), post); err != nil {
		h.deleteImage(r.Context(), image)
		h.serverError(w, r, err)
		return
	}
	if image != "" {
		h.deleteImage(r.Context(), oldImage)
	}

	logrus.WithField("post_id", post.ID).Info("Post updated")
	http.Redirect(w, r, postURL(post.ID), http.StatusSeeOther)
}

func (h *Handler) PostDelete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.findPost(w, r)
	if !ok {
		return
	}
	user := viewer(r)
	if post.AuthorID != user.ID {
		h.forbidden(w, r, "Only the author can delete this post.")
		return
	}

	if err := h.repos.Posts.Delete(r.Context(), post.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.deleteImage(r.Context(), post.Image)

	logrus.WithField("post_id", post.ID).Info("Post deleted")
	http.Redirect(w, r, profileURL(user.Username), http.StatusSeeOther)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	post, ok := h.findPost(w, r)
	if !ok {
		return
	}

	form, err := forms.ParseCommentForm(r)
	if err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	if form.Validate() {
		comment := &models.Comment{Text: form.Text, AuthorID: viewer(r).ID, PostID: post.ID}
		if err := h.repos.Comments.Create(r.Context(), comment); err != nil {
			h.serverError(w, r, err)
			return
		}
		monitoring.CommentsPosted.Inc()
	}
	http.Redirect(w, r, postURL(post.ID), http.StatusSeeOther)
}
