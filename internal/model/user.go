package model

import "time"

const (
	RoleUser  = 0
	RoleAdmin = 1
)

type User struct {
	ID             uint64 `gorm:"primaryKey"`
	Name           string `gorm:"size:64;not null"`
	Email          string `gorm:"uniqueIndex;size:64;not null"`
	Phone          string `gorm:"index;size:32"`
	Password       string `gorm:"size:255;not null"` // bcrypt hash, never the literal secret
	Avatar         string `gorm:"size:255"`
	CoverImage     string `gorm:"size:255"`
	Sex            string `gorm:"size:16"`
	Age            int
	Location       string `gorm:"size:64"`
	Role           int    `gorm:"not null;default:0"` // 0=user, 1=admin
	Credits        int64  `gorm:"not null;default:1000"`
	IsPublic       bool   `gorm:"not null;default:true"`
	IsBanned       bool   `gorm:"not null;default:false"`
	FollowingCount int64  `gorm:"not null;default:0"`
	FollowerCount  int64  `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NameChange records one display-name change; the monthly cap is
// counted against these rows.
type NameChange struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_name_change_user_time"`
	OldName   string    `gorm:"size:64"`
	NewName   string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"index:idx_name_change_user_time"`
}

func (NameChange) TableName() string { return "name_changes" }
