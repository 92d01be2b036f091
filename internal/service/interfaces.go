package service

import (
	"context"
	"time"

	"sclusiv/internal/model"
)

// Repository contracts consumed by the services. The mysql and redis
// packages provide the production implementations; tests use in-memory
// fakes.

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id uint64, fields map[string]any) error
	AdjustCredits(ctx context.Context, id uint64, delta int64) error
	List(ctx context.Context) ([]model.User, error)
	AppendNameChange(ctx context.Context, userID uint64, oldName, newName string, at time.Time) error
	CountNameChangesSince(ctx context.Context, userID uint64, since time.Time) (int64, error)
}

type SessionRepo interface {
	Store(ctx context.Context, userID uint64, token string) error
	Get(ctx context.Context, userID uint64) (string, error)
	Extend(ctx context.Context, userID uint64) error
	Delete(ctx context.Context, userID uint64) error
}

type FollowRepo interface {
	Request(ctx context.Context, followerID, followeeID uint64) (bool, error)
	Accept(ctx context.Context, followeeID, followerID uint64) (bool, error)
	Decline(ctx context.Context, followeeID, followerID uint64) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID uint64) (bool, error)
	IsAccepted(ctx context.Context, followerID, followeeID uint64) (bool, error)
	ListRequests(ctx context.Context, followeeID uint64) ([]model.Follow, error)
	ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error)
	ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error)
	AcceptedFolloweeIDs(ctx context.Context, followerID uint64) ([]uint64, error)
}

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	Update(ctx context.Context, id uint64, fields map[string]any) error
	SoftDelete(ctx context.Context, id uint64) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint64, includeHidden bool) ([]model.Post, error)
	ListFeedCursor(ctx context.Context, authorIDs []uint64, cursor uint64, limit int) ([]model.Post, uint64, error)
	AddComment(ctx context.Context, comment *model.Comment) error
	ListComments(ctx context.Context, postID uint64) ([]model.Comment, error)
}

type LikeRepo interface {
	Like(ctx context.Context, userID, postID uint64) (bool, error)
	Unlike(ctx context.Context, userID, postID uint64) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint64) (bool, error)
	LikeCount(ctx context.Context, postID uint64) (int64, error)
}

// LikeCache mirrors like state in Redis; every call is best-effort.
type LikeCache interface {
	AddLike(ctx context.Context, userID, postID uint64) error
	RemoveLike(ctx context.Context, userID, postID uint64) error
	IsLiked(ctx context.Context, userID, postID uint64) (bool, bool, error)
	GetCount(ctx context.Context, postID uint64) (int64, bool, error)
	SetCount(ctx context.Context, postID uint64, cnt int64) error
	WarmIsLiked(ctx context.Context, userID, postID uint64, liked bool)
	DeleteCount(ctx context.Context, postID uint64) error
}

type Locker interface {
	Acquire(ctx context.Context, postID uint64, token string) (bool, error)
	Release(ctx context.Context, postID uint64, token string) error
}

type MessageRepo interface {
	Append(ctx context.Context, msg *model.Message) error
	ListConversation(ctx context.Context, a, b uint64, cursor uint64, limit int) ([]model.Message, uint64, error)
	ListPeers(ctx context.Context, userID uint64) ([]uint64, error)
}

type CreditRepo interface {
	AppendEntry(ctx context.Context, entry *model.CreditEntry) error
	ListByUser(ctx context.Context, userID uint64, limit int) ([]model.CreditEntry, error)
}

type OutboxRepo interface {
	List(ctx context.Context, batchSize int) ([]model.FollowOutbox, error)
	MarkSent(ctx context.Context, id uint64) error
	MarkRetry(ctx context.Context, id uint64) error
}

// Notifier sends transactional email; failures are logged, never
// propagated.
type Notifier interface {
	SendWelcome(email, name string) error
	SendBanNotice(email, name string, banned bool) error
}

// TextGenerator is the AI collaborator: prompt in, text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
