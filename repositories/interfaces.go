package repositories

import (
	"context"
	"errors"

	"blogger/models"
	"blogger/paginator"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrSelfFollow    = errors.New("cannot follow yourself")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Exists(ctx context.Context, username string) (bool, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id uint) (*models.Group, error)
	FindBySlug(ctx context.Context, slug string) (*models.Group, error)
	All(ctx context.Context) ([]models.Group, error)
}

// PostFilter narrows a post listing. Zero fields are ignored.
type PostFilter struct {
	GroupID    uint
	AuthorID   uint
	FollowerID uint // posts by authors this user follows
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Page(ctx context.Context, filter PostFilter, rawPage string, perPage int) (*paginator.Page[models.Post], error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	Count(ctx context.Context) (int64, error)
}

type FollowRepository interface {
	// Follow is idempotent; created reports whether a new row was written.
	Follow(ctx context.Context, userID, authorID uint) (created bool, err error)
	// Unfollow is a no-op when no row matches; removed reports whether one did.
	Unfollow(ctx context.Context, userID, authorID uint) (removed bool, err error)
	IsFollowing(ctx context.Context, userID, authorID uint) (bool, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
	Followers(ctx context.Context, authorID uint) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}
