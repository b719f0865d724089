package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogger/models"
)

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == authorID {
		return false, ErrSelfFollow
	}

	exists, err := r.IsFollowing(ctx, userID, authorID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	follow := models.Follow{UserID: userID, AuthorID: authorID}
	err = r.db.WithContext(ctx).Omit(clause.Associations).Create(&follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent follow of the same author
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("follow %d -> %d: %w", userID, authorID, err)
	}
	return true, nil
}

func (r *followRepository) Unfollow(ctx context.Context, userID, authorID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, fmt.Errorf("unfollow %d -> %d: %w", userID, authorID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// Following lists the authors userID follows.
func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

// Followers lists the users following authorID.
func (r *followRepository) Followers(ctx context.Context, authorID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN follows ON follows.user_id = users.id").
		Where("follows.author_id = ?", authorID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

func (r *followRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Count(&count).Error
	return count, err
}
