package mysql

import (
	"context"
	"time"

	"sclusiv/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository() *UserRepository {
	return &UserRepository{DB: DB}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

// FindByIdentifier matches either email or phone; used for login and
// duplicate detection.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).
		Where("email = ? OR phone = ?", identifier, identifier).
		First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// Update is the single mutation path for account fields.
func (r *UserRepository) Update(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// AdjustCredits clamps the balance at zero in a single UPDATE.
func (r *UserRepository) AdjustCredits(ctx context.Context, id uint64, delta int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("credits", gorm.Expr("GREATEST(0, credits + ?)", delta)).Error
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var list []model.User
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *UserRepository) AppendNameChange(ctx context.Context, userID uint64, oldName, newName string, at time.Time) error {
	return r.DB.WithContext(ctx).Create(&model.NameChange{
		UserID:    userID,
		OldName:   oldName,
		NewName:   newName,
		CreatedAt: at,
	}).Error
}

func (r *UserRepository) CountNameChangesSince(ctx context.Context, userID uint64, since time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.NameChange{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&n).Error
	return n, err
}
