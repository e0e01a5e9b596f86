package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

type ServiceCenterRow struct {
	models.ServiceCenter `gorm:"embedded"`
	TotalClients         int64 `gorm:"column:total_clients"`
	TotalTickets         int64 `gorm:"column:total_tickets"`
}

const serviceCenterSelect = `cas.*,
	(SELECT COUNT(*) FROM clientes WHERE clientes.ca_id = cas.id AND clientes.is_active = ?) AS total_clients,
	(SELECT COUNT(*) FROM atendimento WHERE atendimento.ca_id = cas.id AND atendimento.is_active = ?) AS total_tickets`

func projectServiceCenter(q *gorm.DB) *gorm.DB {
	return q.Select(serviceCenterSelect, true, true)
}

func (r *GormRepo) activeServiceCenters(ctx context.Context) *gorm.DB {
	return r.db(ctx).Table("cas").Where("cas.is_active = ?", true)
}

func (r *GormRepo) ListServiceCenters(ctx context.Context, f transport.ServiceCenterFilter, page util.PageRequest) ([]ServiceCenterRow, int64, error) {
	base := func() *gorm.DB {
		return r.activeServiceCenters(ctx).Scopes(search(f.Search, "cas.codigo_ca", "cas.nome_ca", "cas.cidade"))
	}
	var rows []ServiceCenterRow
	total, err := paginate(base, projectServiceCenter, page, "cas.codigo_ca ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormRepo) GetServiceCenterRow(ctx context.Context, id uint) (*ServiceCenterRow, error) {
	return r.firstServiceCenterRow(r.activeServiceCenters(ctx).Where("cas.id = ?", id))
}

func (r *GormRepo) GetServiceCenterRowByCode(ctx context.Context, code string) (*ServiceCenterRow, error) {
	return r.firstServiceCenterRow(r.activeServiceCenters(ctx).Where("cas.codigo_ca = ?", code))
}

func (r *GormRepo) firstServiceCenterRow(q *gorm.DB) (*ServiceCenterRow, error) {
	var rows []ServiceCenterRow
	if err := projectServiceCenter(q).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *GormRepo) GetServiceCenter(ctx context.Context, id uint) (*models.ServiceCenter, error) {
	var ca models.ServiceCenter
	if err := r.db(ctx).First(&ca, id).Error; err != nil {
		return nil, err
	}
	return &ca, nil
}

func (r *GormRepo) ServiceCenterCodeTaken(ctx context.Context, code string, excludeID uint) (bool, error) {
	q := r.db(ctx).Model(&models.ServiceCenter{}).Where("codigo_ca = ?", code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return exists(q)
}

func (r *GormRepo) CreateServiceCenter(ctx context.Context, ca *models.ServiceCenter) error {
	return r.db(ctx).Create(ca).Error
}

func (r *GormRepo) SaveServiceCenter(ctx context.Context, ca *models.ServiceCenter) error {
	return r.db(ctx).Save(ca).Error
}

func (r *GormRepo) CountActiveCustomers(ctx context.Context, serviceCenterID uint) (int64, error) {
	var n int64
	err := r.db(ctx).Model(&models.Customer{}).
		Where("ca_id = ? AND is_active = ?", serviceCenterID, true).
		Count(&n).Error
	return n, err
}
