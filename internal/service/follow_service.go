package service

import (
	"context"
	"time"

	"sclusiv/internal/model"
	"sclusiv/internal/pkg"
)

type FollowService struct {
	repo  FollowRepo
	users UserRepo
}

func NewFollowService(repo FollowRepo, users UserRepo) *FollowService {
	return &FollowService{repo: repo, users: users}
}

// Request files a follow request from requester to target. Repeats are
// no-ops (changed=false).
func (s *FollowService) Request(ctx context.Context, requesterID, targetID uint64) (bool, error) {
	if requesterID == 0 || targetID == 0 {
		return false, ErrInvalidInput
	}
	if requesterID == targetID {
		return false, ErrInvalidInput
	}
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return false, ErrNotFound
	}
	return s.repo.Request(ctx, requesterID, targetID)
}

// Accept converts the pending request into an accepted edge. The edge
// is asymmetric: the requester gains a viewing edge onto the target,
// the target does not follow back.
func (s *FollowService) Accept(ctx context.Context, targetID, requesterID uint64) (bool, error) {
	if requesterID == 0 || targetID == 0 || requesterID == targetID {
		return false, ErrInvalidInput
	}
	return s.repo.Accept(ctx, targetID, requesterID)
}

// Decline drops the pending request. Declining twice is a clean no-op.
func (s *FollowService) Decline(ctx context.Context, targetID, requesterID uint64) (bool, error) {
	if requesterID == 0 || targetID == 0 || requesterID == targetID {
		return false, ErrInvalidInput
	}
	return s.repo.Decline(ctx, targetID, requesterID)
}

// Unfollow removes the follower's edge. Unilateral; the followed party
// is not consulted or notified.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint64) (bool, error) {
	if followerID == 0 || followedID == 0 || followerID == followedID {
		return false, ErrInvalidInput
	}
	return s.repo.Unfollow(ctx, followerID, followedID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	if followerID == 0 || followedID == 0 {
		return false, ErrInvalidInput
	}
	return s.repo.IsAccepted(ctx, followerID, followedID)
}

// CanView implements the visibility rule: owners always see their own
// content, admins and public profiles are open, otherwise an accepted
// edge viewer -> owner is required.
func (s *FollowService) CanView(ctx context.Context, viewerID, ownerID uint64) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}
	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return false, ErrNotFound
	}
	if viewer.IsAdmin() {
		return true, nil
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return false, ErrNotFound
	}
	if owner.IsPublic {
		return true, nil
	}
	return s.repo.IsAccepted(ctx, viewerID, ownerID)
}

// PendingRequesters resolves the target's request queue to accounts.
func (s *FollowService) PendingRequesters(ctx context.Context, targetID uint64) ([]model.User, error) {
	rows, err := s.repo.ListRequests(ctx, targetID)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(rows))
	for _, rel := range rows {
		user, err := s.users.FindByID(ctx, rel.FollowerID)
		if err != nil {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

func (s *FollowService) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowings(ctx, userID, cursor, limit)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowers(ctx, userID, cursor, limit)
}

type Sender func(ctx context.Context, ob *model.FollowOutbox) error

// OutboxRelayer drains pending follow events and hands them to the
// configured sender.
type OutboxRelayer struct {
	repo      OutboxRepo
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(repo OutboxRepo, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		pkg.Error.Printf("outbox query: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkRetry(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// LogSender is the fallback sender when no broker is configured.
func LogSender(ctx context.Context, ob *model.FollowOutbox) error {
	pkg.Info.Printf("OUTBOX SEND type=%s follower=%d followee=%d payload=%s",
		ob.EventType, ob.Follower, ob.Followee, ob.Payload)
	return nil
}
