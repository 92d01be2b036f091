package model

import "time"

type PostLike struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_like_pair"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_like_pair"`
	CreatedAt time.Time
}

func (PostLike) TableName() string {
	return "post_likes"
}
