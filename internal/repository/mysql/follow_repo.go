package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sclusiv/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

func NewFollowRepository() *FollowRepository {
	return &FollowRepository{DB: DB}
}

type OutboxRepository struct {
	DB *gorm.DB
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{DB: DB}
}

// Request inserts a pending edge follower -> followee. Re-requesting
// an existing pending or accepted pair is a no-op (changed=false).
func (r *FollowRepository) Request(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel model.Follow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&rel).Error
		if err == nil {
			changed = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		rel = model.Follow{
			FollowerID: followerID,
			FolloweeID: followeeID,
			Status:     model.FollowPending,
		}
		if err := tx.Create(&rel).Error; err != nil {
			return err
		}
		changed = true
		return insertOutbox(tx, "request", followerID, followeeID)
	})
	return changed, err
}

// Accept flips a pending edge to accepted and adjusts both counters.
// Accepting grants the requester a viewing edge onto the followee; no
// reciprocal edge is created.
func (r *FollowRepository) Accept(ctx context.Context, followeeID, followerID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel model.Follow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, model.FollowPending).
			First(&rel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				changed = false
				return nil
			}
			return err
		}
		if err := tx.Model(&model.Follow{}).
			Where("id = ? AND status = ?", rel.ID, model.FollowPending).
			Update("status", model.FollowAccepted).Error; err != nil {
			return err
		}
		changed = true
		if err := adjustFollowCounts(tx, followerID, followeeID, +1); err != nil {
			return err
		}
		return insertOutbox(tx, "accept", followerID, followeeID)
	})
	return changed, err
}

// Decline removes a pending edge. Declining an already-removed pair is
// a clean no-op.
func (r *FollowRepository) Decline(ctx context.Context, followeeID, followerID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, model.FollowPending).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			changed = false
			return nil
		}
		changed = true
		return insertOutbox(tx, "decline", followerID, followeeID)
	})
	return changed, err
}

// Unfollow removes an accepted edge. Unilateral.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, model.FollowAccepted).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			changed = false
			return nil
		}
		changed = true
		if err := adjustFollowCounts(tx, followerID, followeeID, -1); err != nil {
			return err
		}
		return insertOutbox(tx, "unfollow", followerID, followeeID)
	})
	return changed, err
}

func (r *FollowRepository) IsAccepted(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, model.FollowAccepted).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *FollowRepository) ListRequests(ctx context.Context, followeeID uint64) ([]model.Follow, error) {
	var rows []model.Follow
	err := r.DB.WithContext(ctx).
		Where("followee_id = ? AND status = ?", followeeID, model.FollowPending).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *FollowRepository) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return r.listEdges(ctx, "follower_id", userID, cursor, limit)
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return r.listEdges(ctx, "followee_id", userID, cursor, limit)
}

func (r *FollowRepository) listEdges(ctx context.Context, column string, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where(column+" = ? AND status = ?", userID, model.FollowAccepted)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Follow
	// limit+1 so the next cursor is known without a second query
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}

// AcceptedFolloweeIDs returns the ids this user can view restricted
// content of; consumed by the feed query.
func (r *FollowRepository) AcceptedFolloweeIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND status = ?", followerID, model.FollowAccepted).
		Pluck("followee_id", &ids).Error
	return ids, err
}

func adjustFollowCounts(tx *gorm.DB, followerID, followeeID uint64, delta int64) error {
	if err := tx.Model(&model.User{}).
		Where("id = ?", followerID).
		UpdateColumn("following_count", gorm.Expr("GREATEST(0, following_count + ?)", delta)).Error; err != nil {
		return err
	}
	return tx.Model(&model.User{}).
		Where("id = ?", followeeID).
		UpdateColumn("follower_count", gorm.Expr("GREATEST(0, follower_count + ?)", delta)).Error
}

func insertOutbox(tx *gorm.DB, event string, follower, followee uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"follower":   follower,
		"followee":   followee,
	})
	ob := &model.FollowOutbox{
		EventType: event,
		Follower:  follower,
		Followee:  followee,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.FollowOutbox, error) {
	var list []model.FollowOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
