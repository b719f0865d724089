package models

import "time"

// previewLength is how many characters of the text a post shows as its title.
const previewLength = 15

// Post is a single publication. PubDate is set once on insert and is never
// written by updates.
type Post struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"column:pub_date;autoCreateTime;<-:create;index"`
	AuthorID uint      `gorm:"column:author_id;not null;index"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uint     `gorm:"column:group_id;index"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image    string    `gorm:"size:255"`
}

// TableName overrides the table name used by GORM
func (Post) TableName() string {
	return "posts"
}

func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > previewLength {
		return string(runes[:previewLength])
	}
	return p.Text
}
