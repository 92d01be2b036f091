package service

import (
	"context"
	"time"

	"sclusiv/internal/model"
	"sclusiv/internal/pkg"

	"golang.org/x/crypto/bcrypt"
)

// AdminConfig is the operator credential path: the reserved identifier
// plus a fixed secret, checked outside the normal password flow.
type AdminConfig struct {
	Email    string
	Password string
}

type UserService struct {
	users    UserRepo
	sessions SessionRepo
	credits  *CreditService
	notifier Notifier
	admin    AdminConfig
	now      func() time.Time
}

func NewUserService(users UserRepo, sessions SessionRepo, credits *CreditService, notifier Notifier, admin AdminConfig) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
		credits:  credits,
		notifier: notifier,
		admin:    admin,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Avatar   string
}

// EnsureAdminAccount runs once at startup: the reserved identifier
// always resolves to an admin account, even after a storage reset.
func (s *UserService) EnsureAdminAccount(ctx context.Context) error {
	admin, err := s.users.FindByEmail(ctx, s.admin.Email)
	if err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return s.users.Create(ctx, &model.User{
			Name:     "Administrator",
			Email:    s.admin.Email,
			Password: string(hash),
			Role:     model.RoleAdmin,
			Credits:  DefaultCredits,
			IsPublic: true,
		})
	}
	if !admin.IsAdmin() {
		return s.users.Update(ctx, admin.ID, map[string]any{"role": model.RoleAdmin})
	}
	return nil
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, *pkg.Pair, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, nil, ErrInvalidInput
	}
	// The reserved identifier cannot be self-registered.
	if in.Email == s.admin.Email {
		return nil, nil, ErrReservedEmail
	}
	if _, err := s.users.FindByIdentifier(ctx, in.Email); err == nil {
		return nil, nil, ErrAlreadyExists
	}
	if in.Phone != "" {
		if _, err := s.users.FindByIdentifier(ctx, in.Phone); err == nil {
			return nil, nil, ErrAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: string(hash),
		Avatar:   in.Avatar,
		Role:     model.RoleUser,
		Credits:  DefaultCredits,
		IsPublic: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	// No confirmation step: registration transitions straight to an
	// authenticated session.
	pair, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendWelcome(user.Email, user.Name); err != nil {
			pkg.Warn.Printf("welcome mail to %s failed: %v", user.Email, err)
		}
	}
	return user, pair, nil
}

func (s *UserService) Login(ctx context.Context, identifier, password string) (*model.User, *pkg.Pair, error) {
	if identifier == s.admin.Email {
		if password != s.admin.Password {
			return nil, nil, ErrWrongPassword
		}
		admin, err := s.users.FindByEmail(ctx, s.admin.Email)
		if err != nil {
			if err := s.EnsureAdminAccount(ctx); err != nil {
				return nil, nil, err
			}
			if admin, err = s.users.FindByEmail(ctx, s.admin.Email); err != nil {
				return nil, nil, err
			}
		}
		pair, err := s.establishSession(ctx, admin)
		if err != nil {
			return nil, nil, err
		}
		return admin, pair, nil
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	if user.IsBanned {
		return nil, nil, ErrBanned
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, ErrWrongPassword
	}
	pair, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	return s.sessions.Delete(ctx, userID)
}

// Current re-fetches the session's account from the identity store;
// the session itself carries only an id.
func (s *UserService) Current(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	if user.IsBanned {
		return nil, ErrBanned
	}
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ProfileUpdate carries the fields a user may change about themselves.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	Password   *string
	Avatar     *string
	CoverImage *string
	Sex        *string
	Age        *int
	Location   *string
	IsPublic   *bool
}

// UpdateProfile applies the credit rules: 100 credits for a display
// name change (at most three per calendar month), 100 credits for any
// change to email, phone or password (per update action, not per
// field). Either everything applies, including charges, or nothing
// does. The admin account pays nothing.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, in ProfileUpdate) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	nameChanged := in.Name != nil && *in.Name != "" && *in.Name != user.Name
	contactChanged := (in.Email != nil && *in.Email != "" && *in.Email != user.Email) ||
		(in.Phone != nil && *in.Phone != "" && *in.Phone != user.Phone) ||
		(in.Password != nil && *in.Password != "")

	if in.Email != nil && *in.Email == s.admin.Email && user.Email != s.admin.Email {
		return nil, ErrReservedEmail
	}

	// Identifiers stay unique across accounts on update, same as at
	// registration.
	if in.Email != nil && *in.Email != "" && *in.Email != user.Email {
		if other, err := s.users.FindByIdentifier(ctx, *in.Email); err == nil && other.ID != userID {
			return nil, ErrAlreadyExists
		}
	}
	if in.Phone != nil && *in.Phone != "" && *in.Phone != user.Phone {
		if other, err := s.users.FindByIdentifier(ctx, *in.Phone); err == nil && other.ID != userID {
			return nil, ErrAlreadyExists
		}
	}

	var charge int64
	if !user.IsAdmin() {
		if nameChanged {
			charge += NameChangeCost
		}
		if contactChanged {
			charge += ContactChangeCost
		}
		if charge > user.Credits {
			return nil, ErrInsufficientCredits
		}
		if nameChanged {
			n, err := s.users.CountNameChangesSince(ctx, userID, monthStart(s.now()))
			if err != nil {
				return nil, err
			}
			if n >= NameChangesPerMonth {
				return nil, ErrNameChangeLimit
			}
		}
	}

	fields := map[string]any{}
	if nameChanged {
		fields["name"] = *in.Name
	}
	if in.Email != nil && *in.Email != "" {
		fields["email"] = *in.Email
	}
	if in.Phone != nil && *in.Phone != "" {
		fields["phone"] = *in.Phone
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hash)
	}
	if in.Avatar != nil {
		fields["avatar"] = *in.Avatar
	}
	if in.CoverImage != nil {
		fields["cover_image"] = *in.CoverImage
	}
	if in.Sex != nil {
		fields["sex"] = *in.Sex
	}
	if in.Age != nil {
		fields["age"] = *in.Age
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}

	if err := s.users.Update(ctx, userID, fields); err != nil {
		return nil, err
	}
	if nameChanged {
		if err := s.users.AppendNameChange(ctx, userID, user.Name, *in.Name, s.now()); err != nil {
			return nil, err
		}
		if !user.IsAdmin() {
			if err := s.credits.Adjust(ctx, userID, -NameChangeCost, "name_change"); err != nil {
				return nil, err
			}
		}
	}
	if contactChanged && !user.IsAdmin() {
		if err := s.credits.Adjust(ctx, userID, -ContactChangeCost, "contact_change"); err != nil {
			return nil, err
		}
	}
	// A password change invalidates the active session.
	if in.Password != nil && *in.Password != "" {
		_ = s.sessions.Delete(ctx, userID)
	}

	return s.users.FindByID(ctx, userID)
}

// CanChangeName is a pure decision op for the presentation layer: nil
// means allowed, otherwise the blocking rule is returned.
func (s *UserService) CanChangeName(ctx context.Context, userID uint64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ErrNotFound
	}
	if user.IsAdmin() {
		return nil
	}
	if user.Credits < NameChangeCost {
		return ErrInsufficientCredits
	}
	n, err := s.users.CountNameChangesSince(ctx, userID, monthStart(s.now()))
	if err != nil {
		return err
	}
	if n >= NameChangesPerMonth {
		return ErrNameChangeLimit
	}
	return nil
}

// CanSendMessage is the no-side-effect twin of MessageService.Send's
// precondition.
func (s *UserService) CanSendMessage(ctx context.Context, userID uint64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ErrNotFound
	}
	if user.IsAdmin() {
		return nil
	}
	if user.Credits < MessageCost {
		return ErrInsufficientCredits
	}
	return nil
}

func (s *UserService) establishSession(ctx context.Context, user *model.User) (*pkg.Pair, error) {
	pair, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Store(ctx, user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// monthStart is the first instant of the month in local time; the
// monthly name-change cap resets there.
func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
