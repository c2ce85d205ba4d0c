package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Vileyy/admin-halora-app/internal/model"
)

// AdminRepository stores console operator accounts and their refresh tokens.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.AdminAccount) error
	GetByID(ctx context.Context, id string) (*model.AdminAccount, error)
	GetByEmail(ctx context.Context, email string) (*model.AdminAccount, error)
	CountAdmins(ctx context.Context) (int64, error)

	CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.AdminAccount) error {
	return GetDB(ctx, r.db).Create(admin).Error
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*model.AdminAccount, error) {
	var admin model.AdminAccount
	if err := GetDB(ctx, r.db).First(&admin, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.AdminAccount, error) {
	var admin model.AdminAccount
	if err := GetDB(ctx, r.db).First(&admin, "email = ?", email).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (r *adminRepository) CountAdmins(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.AdminAccount{}).Count(&total).Error
	return total, err
}

func (r *adminRepository) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	return GetDB(ctx, r.db).Create(token).Error
}

func (r *adminRepository) GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := GetDB(ctx, r.db).First(&rt, "token = ?", token).Error; err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

func (r *adminRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	return GetDB(ctx, r.db).Where("token = ?", token).Delete(&model.RefreshToken{}).Error
}

func (r *adminRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res := GetDB(ctx, r.db).Where("expires_at < ?", now).Delete(&model.RefreshToken{})
	return res.RowsAffected, res.Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
