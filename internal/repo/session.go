package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/helpdesk/internal/models"
)

func (r *GormRepo) CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.db(ctx).Create(t).Error
}

func (r *GormRepo) FindRefreshToken(ctx context.Context, digest string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.db(ctx).Where("token = ?", digest).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshToken marks one token as used. It reports false when the
// token was already revoked, so a token can be consumed at most once.
func (r *GormRepo) RevokeRefreshToken(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.db(ctx).Model(&models.RefreshToken{}).
		Where("id = ? AND revogado_em IS NULL", id).
		Update("revogado_em", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRepo) RevokeAllRefreshTokens(ctx context.Context, userID uint, at time.Time) (int64, error) {
	res := r.db(ctx).Model(&models.RefreshToken{}).
		Where("usuario_id = ? AND revogado_em IS NULL", userID).
		Update("revogado_em", at)
	return res.RowsAffected, res.Error
}

// PurgeSessions deletes tokens that expired or were revoked before the cutoff.
func (r *GormRepo) PurgeSessions(ctx context.Context, before time.Time) (int64, error) {
	res := r.db(ctx).
		Where("expira_em < ? OR (revogado_em IS NOT NULL AND revogado_em < ?)", before, before).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
