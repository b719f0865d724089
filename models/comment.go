package models

import "time"

type Comment struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"column:created;autoCreateTime;<-:create;index"`
	AuthorID uint      `gorm:"column:author_id;not null;index"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	PostID   uint      `gorm:"column:post_id;not null;index"`
	Post     Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Comment) TableName() string {
	return "comments"
}
