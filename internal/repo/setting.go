package repo

import (
	"context"

	"github.com/Skotchmaster/helpdesk/internal/models"
)

func (r *GormRepo) ListSettings(ctx context.Context) ([]models.Setting, error) {
	var out []models.Setting
	err := r.db(ctx).Order("chave ASC").Find(&out).Error
	return out, err
}

func (r *GormRepo) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	var s models.Setting
	if err := r.db(ctx).Where("chave = ?", key).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) GetSettings(ctx context.Context, keys []string) ([]models.Setting, error) {
	var out []models.Setting
	err := r.db(ctx).Where("chave IN ?", keys).Order("chave ASC").Find(&out).Error
	return out, err
}

func (r *GormRepo) UpdateSettingValue(ctx context.Context, key, value string) error {
	return r.db(ctx).Model(&models.Setting{}).Where("chave = ?", key).Update("valor", value).Error
}
