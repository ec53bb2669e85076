package models

import "time"

// GracePost is a community "grace sharing" post.
type GracePost struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	AuthorName  string    `gorm:"column:author_name;size:50;not null"`
	AuthorTitle string    `gorm:"column:author_title;size:20;not null"` // church office, e.g. 집사
	Content     string    `gorm:"column:content;type:text;not null"`
	Likes       int       `gorm:"column:likes;not null;default:0"` // "amen" count, only ever incremented in SQL
	DateStr     string    `gorm:"column:date_str;size:100;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (GracePost) TableName() string {
	return "grace_posts"
}
