package model

import "time"

// CreditEntry is the audit trail of the credit ledger: one row per
// applied adjustment. Balance lives on users.credits; entries are
// append-only.
type CreditEntry struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_credit_user_time"`
	Delta     int64     `gorm:"not null"`
	Reason    string    `gorm:"size:32;not null"` // name_change / contact_change / message / admin_grant
	CreatedAt time.Time `gorm:"index:idx_credit_user_time"`
}

func (CreditEntry) TableName() string { return "credit_entries" }
