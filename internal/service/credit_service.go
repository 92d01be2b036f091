package service

import (
	"context"

	"sclusiv/internal/model"
)

// Credit economy constants. The admin account is exempt from every
// charge.
const (
	DefaultCredits      = 1000
	NameChangeCost      = 100
	ContactChangeCost   = 100
	MessageCost         = 10
	NameChangesPerMonth = 3
)

// CreditService is mechanism-only: it applies deltas and keeps the
// audit trail. Charging rules (who pays what, and when) live in the
// facade services that call it.
type CreditService struct {
	users   UserRepo
	entries CreditRepo
}

func NewCreditService(users UserRepo, entries CreditRepo) *CreditService {
	return &CreditService{users: users, entries: entries}
}

// Adjust applies delta to the balance, clamped at zero. Negative
// deltas against the admin account are no-ops.
func (s *CreditService) Adjust(ctx context.Context, userID uint64, delta int64, reason string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ErrNotFound
	}
	if user.IsAdmin() && delta < 0 {
		return nil
	}
	if err := s.users.AdjustCredits(ctx, userID, delta); err != nil {
		return err
	}
	return s.entries.AppendEntry(ctx, &model.CreditEntry{
		UserID: userID,
		Delta:  delta,
		Reason: reason,
	})
}

func (s *CreditService) Balance(ctx context.Context, userID uint64) (int64, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, ErrNotFound
	}
	return user.Credits, nil
}

func (s *CreditService) History(ctx context.Context, userID uint64, limit int) ([]model.CreditEntry, error) {
	return s.entries.ListByUser(ctx, userID, limit)
}
