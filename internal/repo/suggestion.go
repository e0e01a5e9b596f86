package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

type SuggestionRow struct {
	models.Suggestion `gorm:"embedded"`
	UserName          string  `gorm:"column:user_name"`
	UserEmail         string  `gorm:"column:user_email"`
	CustomerName      *string `gorm:"column:customer_name"`
	CustomerCode      *string `gorm:"column:customer_code"`
	CaName            *string `gorm:"column:ca_name"`
	CaCode            *string `gorm:"column:ca_code"`
}

const suggestionSelect = `sugestoes.*,
	usuarios.nome_usuario AS user_name, usuarios.email AS user_email,
	clientes.nome_cliente AS customer_name, clientes.codigo_cliente AS customer_code,
	cas.nome_ca AS ca_name, cas.codigo_ca AS ca_code`

func projectSuggestion(q *gorm.DB) *gorm.DB {
	return q.Select(suggestionSelect)
}

func (r *GormRepo) suggestions(ctx context.Context) *gorm.DB {
	return r.db(ctx).Table("sugestoes").
		Joins("LEFT JOIN usuarios ON usuarios.id = sugestoes.usuario_id").
		Joins("LEFT JOIN clientes ON clientes.id = sugestoes.cliente_id").
		Joins("LEFT JOIN cas ON cas.id = sugestoes.ca_id")
}

func (r *GormRepo) ListSuggestions(ctx context.Context, f transport.SuggestionFilter, page util.PageRequest) ([]SuggestionRow, int64, error) {
	base := func() *gorm.DB {
		q := r.suggestions(ctx)
		if f.OwnerID != 0 {
			q = q.Where("sugestoes.usuario_id = ?", f.OwnerID)
		}
		if f.IsRead != nil {
			q = q.Where("sugestoes.is_read = ?", *f.IsRead)
		}
		if f.CustomerID != nil {
			q = q.Where("sugestoes.cliente_id = ?", *f.CustomerID)
		}
		if f.ServiceCenterID != nil {
			q = q.Where("sugestoes.ca_id = ?", *f.ServiceCenterID)
		}
		return q.Scopes(search(f.Search, "sugestoes.titulo", "sugestoes.conteudo"))
	}
	var rows []SuggestionRow
	total, err := paginate(base, projectSuggestion, page, "sugestoes.created_at DESC, sugestoes.id DESC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormRepo) GetSuggestionRow(ctx context.Context, id uint) (*SuggestionRow, error) {
	var rows []SuggestionRow
	if err := projectSuggestion(r.suggestions(ctx).Where("sugestoes.id = ?", id)).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *GormRepo) GetSuggestion(ctx context.Context, id uint) (*models.Suggestion, error) {
	var s models.Suggestion
	if err := r.db(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) CreateSuggestion(ctx context.Context, s *models.Suggestion) error {
	return r.db(ctx).Create(s).Error
}

func (r *GormRepo) SaveSuggestion(ctx context.Context, s *models.Suggestion) error {
	return r.db(ctx).Save(s).Error
}

func (r *GormRepo) DeleteSuggestion(ctx context.Context, id uint) error {
	res := r.db(ctx).Delete(&models.Suggestion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) MarkSuggestionRead(ctx context.Context, id uint, read bool) error {
	res := r.db(ctx).Model(&models.Suggestion{}).Where("id = ?", id).Update("is_read", read)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) SuggestionStatistics(ctx context.Context, since time.Time) (transport.SuggestionStatistics, error) {
	var out transport.SuggestionStatistics
	db := r.db(ctx)
	if err := db.Model(&models.Suggestion{}).Count(&out.Total).Error; err != nil {
		return out, err
	}
	if err := db.Model(&models.Suggestion{}).Where("is_read = ?", true).Count(&out.Read).Error; err != nil {
		return out, err
	}
	out.Unread = out.Total - out.Read
	if err := db.Model(&models.Suggestion{}).Where("created_at >= ?", since).Count(&out.Today).Error; err != nil {
		return out, err
	}
	if err := db.Model(&models.Suggestion{}).Distinct("usuario_id").Count(&out.Authors).Error; err != nil {
		return out, err
	}
	return out, nil
}
