package service

import (
	"context"

	"sclusiv/internal/config"
	"sclusiv/internal/model"
	"sclusiv/internal/pkg"
)

// AdminService holds the governance operations. Every call verifies
// the actor's admin role itself; handlers do not pre-check.
type AdminService struct {
	users    UserRepo
	sessions SessionRepo
	credits  *CreditService
	notifier Notifier
}

func NewAdminService(users UserRepo, sessions SessionRepo, credits *CreditService, notifier Notifier) *AdminService {
	return &AdminService{users: users, sessions: sessions, credits: credits, notifier: notifier}
}

func (s *AdminService) requireAdmin(ctx context.Context, actorID uint64) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return ErrNotFound
	}
	if !actor.IsAdmin() {
		return ErrNoPermission
	}
	return nil
}

func (s *AdminService) Roster(ctx context.Context, actorID uint64) ([]model.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// GrantCredits tops up a user's balance outside the charging rules.
func (s *AdminService) GrantCredits(ctx context.Context, actorID, targetID uint64, amount int64) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if amount <= 0 {
		return ErrInvalidInput
	}
	return s.credits.Adjust(ctx, targetID, amount, "admin_grant")
}

// ToggleBan flips the target's ban flag. Banning tears down the
// target's active session immediately; the notice mail is best-effort.
func (s *AdminService) ToggleBan(ctx context.Context, actorID, targetID uint64) (bool, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return false, err
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return false, ErrNotFound
	}
	if target.IsAdmin() {
		return false, ErrNoPermission
	}
	banned := !target.IsBanned
	if err := s.users.Update(ctx, targetID, map[string]any{"is_banned": banned}); err != nil {
		return false, err
	}
	if banned {
		_ = s.sessions.Delete(ctx, targetID)
	}
	if s.notifier != nil {
		if err := s.notifier.SendBanNotice(target.Email, target.Name, banned); err != nil {
			pkg.Warn.Printf("ban notice to %s failed: %v", target.Email, err)
		}
	}
	return banned, nil
}

// UpdateUser lets the admin edit any account without charges.
func (s *AdminService) UpdateUser(ctx context.Context, actorID, targetID uint64, fields map[string]any) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return ErrNotFound
	}
	// handing out the reserved identifier would promote the target at
	// the next startup repair
	if v, ok := fields["email"].(string); ok && v == config.ReservedAdminEmail {
		return ErrReservedEmail
	}
	// role and balance have dedicated paths; strip them if present
	delete(fields, "role")
	delete(fields, "credits")
	if len(fields) == 0 {
		return ErrInvalidInput
	}
	return s.users.Update(ctx, targetID, fields)
}
