package models

import "time"

// User is an author and reader of the blog.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:150;not null"`
	Email     string `gorm:"size:254"`
	PwHash    string `gorm:"column:pw_hash;not null" json:"-"`
	CreatedAt time.Time
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Username
}
