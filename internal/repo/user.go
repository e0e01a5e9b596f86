package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

func (r *GormRepo) FindActiveUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db(ctx).Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	q := r.db(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return exists(q)
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.db(ctx).Create(u).Error
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	return r.db(ctx).Save(u).Error
}

// IncrementLoginAttempts bumps the failed-login counter and returns its new value.
func (r *GormRepo) IncrementLoginAttempts(ctx context.Context, id uint) (int, error) {
	if err := r.db(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("tentativas_login", gorm.Expr("tentativas_login + ?", 1)).Error; err != nil {
		return 0, err
	}
	var user models.User
	if err := r.db(ctx).Select("tentativas_login").First(&user, id).Error; err != nil {
		return 0, err
	}
	return user.LoginAttempts, nil
}

func (r *GormRepo) DeactivateUser(ctx context.Context, id uint) error {
	return r.db(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", false).Error
}

// ReactivateUser also clears the failed-login counter.
func (r *GormRepo) ReactivateUser(ctx context.Context, id uint) error {
	return r.db(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": true, "tentativas_login": 0}).Error
}

func (r *GormRepo) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"tentativas_login": 0, "ultimo_login": at}).Error
}

func (r *GormRepo) SetUserPassword(ctx context.Context, id uint, hash string) error {
	return r.db(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("senha_hash", hash).Error
}

func (r *GormRepo) CountActiveAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.db(ctx).Model(&models.User{}).
		Where("is_admin = ? AND is_active = ?", true, true).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) CountActiveUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db(ctx).Model(&models.User{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *GormRepo) ListUsers(ctx context.Context, f transport.UserFilter, page util.PageRequest) ([]models.User, int64, error) {
	base := func() *gorm.DB {
		q := r.db(ctx).Model(&models.User{})
		if f.IsAdmin != nil {
			q = q.Where("is_admin = ?", *f.IsAdmin)
		}
		if f.IsActive != nil {
			q = q.Where("is_active = ?", *f.IsActive)
		}
		return q.Scopes(search(f.Search, "nome_usuario", "email"))
	}

	var items []models.User
	total, err := paginate(base, nil, page, "nome_usuario ASC", &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
