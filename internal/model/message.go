package model

import "time"

// Message is append-only: never edited or deleted. At least one of
// Text, ImageURL or AudioURL is present.
type Message struct {
	ID         uint64 `gorm:"primaryKey"`
	SenderID   uint64 `gorm:"not null;index:idx_msg_pair"`
	ReceiverID uint64 `gorm:"not null;index:idx_msg_pair"`
	Text       string `gorm:"type:text"`
	ImageURL   string `gorm:"size:255"`
	AudioURL   string `gorm:"size:255"`
	CreatedAt  time.Time
}
