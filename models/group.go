package models

// Group is a named category posts can belong to.
type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"type:text"`
}

// TableName overrides the table name used by GORM
func (Group) TableName() string {
	return "groups"
}

func (g Group) String() string {
	return g.Title
}
