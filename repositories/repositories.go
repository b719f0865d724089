package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Repositories bundles every repository over one connection.
type Repositories struct {
	Users    UserRepository
	Groups   GroupRepository
	Posts    PostRepository
	Comments CommentRepository
	Follows  FollowRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Groups:   NewGroupRepository(db),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
		Follows:  NewFollowRepository(db),
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
