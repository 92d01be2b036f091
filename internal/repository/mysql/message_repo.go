package mysql

import (
	"context"

	"sclusiv/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{DB: DB}
}

// Append stores a message. Messages are never updated or deleted.
func (r *MessageRepository) Append(ctx context.Context, msg *model.Message) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *MessageRepository) ListConversation(ctx context.Context, a, b uint64, cursor uint64, limit int) ([]model.Message, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q := r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Message
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

// ListPeers returns the ids this user has exchanged messages with.
func (r *MessageRepository) ListPeers(ctx context.Context, userID uint64) ([]uint64, error) {
	var senders, receivers []uint64
	if err := r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("receiver_id = ?", userID).
		Distinct().
		Pluck("sender_id", &senders).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("sender_id = ?", userID).
		Distinct().
		Pluck("receiver_id", &receivers).Error; err != nil {
		return nil, err
	}
	seen := make(map[uint64]struct{}, len(senders)+len(receivers))
	var peers []uint64
	for _, id := range append(senders, receivers...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		peers = append(peers, id)
	}
	return peers, nil
}
