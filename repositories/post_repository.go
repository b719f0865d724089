package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogger/models"
	"blogger/paginator"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update writes the editable columns only; pub_date and author never change.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"text":     post.Text,
		"group_id": post.GroupID,
		"image":    post.Image,
	})
	if res.Error != nil {
		return fmt.Errorf("update post %d: %w", post.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post together with its comments.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of post %d: %w", id, err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete post %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	return count, err
}

func (r *postRepository) Page(ctx context.Context, filter PostFilter, rawPage string, perPage int) (*paginator.Page[models.Post], error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	pg := paginator.Paginator{Count: count, PerPage: perPage}
	number := pg.Number(rawPage)

	var posts []models.Post
	err = r.filtered(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("posts.pub_date DESC, posts.id DESC").
		Limit(perPage).
		Offset(pg.Offset(number)).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &paginator.Page[models.Post]{Items: posts, Number: number, Paginator: pg}, nil
}

func (r *postRepository) filtered(ctx context.Context, filter PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.GroupID != 0 {
		q = q.Where("posts.group_id = ?", filter.GroupID)
	}
	if filter.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.FollowerID != 0 {
		following := r.db.WithContext(ctx).Model(&models.Follow{}).
			Select("author_id").
			Where("user_id = ?", filter.FollowerID)
		q = q.Where("posts.author_id IN (?)", following)
	}
	return q
}
