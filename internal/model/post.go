package model

import "time"

type Post struct {
	ID       uint64 `gorm:"primaryKey"`
	AuthorID uint64 `gorm:"not null;index:idx_author_time"`
	// Byline snapshot taken at creation time; later profile edits do
	// not rewrite historical posts.
	AuthorName   string    `gorm:"size:64;not null"`
	AuthorAvatar string    `gorm:"size:255"`
	Content      string    `gorm:"type:text"`
	ImageURL     string    `gorm:"size:255"`
	Status       int       `gorm:"not null;default:0"` // 0=normal 1=deleted
	IsHidden     bool      `gorm:"not null;default:false"`
	LikeCount    int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"index:idx_author_time"`
	UpdatedAt    time.Time
}

// Comment is immutable once created and owned by its parent post.
type Comment struct {
	ID         uint64 `gorm:"primaryKey"`
	PostID     uint64 `gorm:"not null;index"`
	AuthorID   uint64 `gorm:"not null"`
	AuthorName string `gorm:"size:64;not null"`
	Text       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
}
