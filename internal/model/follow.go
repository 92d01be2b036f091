package model

import "time"

const (
	FollowPending  int8 = 0
	FollowAccepted int8 = 1
)

// Follow is a directed edge follower -> followee. A pending row is a
// follow request awaiting the followee's decision; accepting flips it
// to accepted, declining deletes it. An accepted edge grants the
// follower visibility into the followee's restricted content.
type Follow struct {
	ID         uint64 `gorm:"primaryKey"`
	FollowerID uint64 `gorm:"not null;index:idx_follower;uniqueIndex:uk_follow_pair"`
	FolloweeID uint64 `gorm:"not null;index:idx_followee;uniqueIndex:uk_follow_pair"`
	Status     int8   `gorm:"not null;default:0;comment:'0=pending,1=accepted'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Follow) TableName() string { return "follows" }

// FollowOutbox queues follow-graph events for async delivery.
type FollowOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // request / accept / decline / unfollow
	Follower  uint64 `gorm:"not null"`
	Followee  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FollowOutbox) TableName() string { return "follow_outbox" }
