package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

type CustomerRow struct {
	models.Customer   `gorm:"embedded"`
	ServiceCenterName string `gorm:"column:ca_name"`
	ServiceCenterCode string `gorm:"column:ca_code"`
	TotalTickets      int64  `gorm:"column:total_tickets"`
}

const customerSelect = `clientes.*, cas.nome_ca AS ca_name, cas.codigo_ca AS ca_code,
	(SELECT COUNT(*) FROM atendimento WHERE atendimento.cliente_id = clientes.id AND atendimento.is_active = ?) AS total_tickets`

func projectCustomer(q *gorm.DB) *gorm.DB {
	return q.Select(customerSelect, true)
}

func (r *GormRepo) activeCustomers(ctx context.Context) *gorm.DB {
	return r.db(ctx).Table("clientes").
		Joins("LEFT JOIN cas ON cas.id = clientes.ca_id").
		Where("clientes.is_active = ?", true)
}

func (r *GormRepo) ListCustomers(ctx context.Context, f transport.CustomerFilter, page util.PageRequest) ([]CustomerRow, int64, error) {
	base := func() *gorm.DB {
		q := r.activeCustomers(ctx)
		if f.ServiceCenterID != nil {
			q = q.Where("clientes.ca_id = ?", *f.ServiceCenterID)
		}
		if f.Status != "" {
			q = q.Where("clientes.status_cliente = ?", f.Status)
		}
		return q.Scopes(search(f.Search,
			"clientes.codigo_cliente", "clientes.nome_cliente", "clientes.razao_social", "clientes.cnpj_cpf"))
	}
	var rows []CustomerRow
	total, err := paginate(base, projectCustomer, page, "cas.codigo_ca ASC, clientes.codigo_cliente ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ServiceCenterCustomers returns every active customer of a CA, unpaged.
func (r *GormRepo) ServiceCenterCustomers(ctx context.Context, serviceCenterID uint) ([]CustomerRow, error) {
	var rows []CustomerRow
	err := projectCustomer(r.activeCustomers(ctx).Where("clientes.ca_id = ?", serviceCenterID)).
		Order("clientes.codigo_cliente ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormRepo) GetCustomerRow(ctx context.Context, id uint) (*CustomerRow, error) {
	return firstCustomerRow(r.activeCustomers(ctx).Where("clientes.id = ?", id))
}

func (r *GormRepo) GetCustomerRowByCode(ctx context.Context, serviceCenterID uint, code string) (*CustomerRow, error) {
	return firstCustomerRow(r.activeCustomers(ctx).
		Where("clientes.ca_id = ? AND clientes.codigo_cliente = ?", serviceCenterID, code))
}

func firstCustomerRow(q *gorm.DB) (*CustomerRow, error) {
	var rows []CustomerRow
	if err := projectCustomer(q).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var cust models.Customer
	if err := r.db(ctx).First(&cust, id).Error; err != nil {
		return nil, err
	}
	return &cust, nil
}

func (r *GormRepo) CustomerCodeTaken(ctx context.Context, serviceCenterID uint, code string, excludeID uint) (bool, error) {
	q := r.db(ctx).Model(&models.Customer{}).Where("ca_id = ? AND codigo_cliente = ?", serviceCenterID, code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return exists(q)
}

func (r *GormRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.db(ctx).Create(c).Error
}

func (r *GormRepo) SaveCustomer(ctx context.Context, c *models.Customer) error {
	return r.db(ctx).Save(c).Error
}
