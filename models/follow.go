package models

import "time"

// Follow is a subscription of UserID to the posts of AuthorID.
type Follow struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"column:user_id;not null;uniqueIndex:idx_follow_user_author"`
	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID  uint `gorm:"column:author_id;not null;uniqueIndex:idx_follow_user_author;index"`
	Author    User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follows"
}
