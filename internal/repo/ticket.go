package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

// TicketRow is a ticket with the display fields of everything it references.
type TicketRow struct {
	models.Ticket `gorm:"embedded"`

	CaCode  string `gorm:"column:ca_code"`
	CaName  string `gorm:"column:ca_name"`
	CaCity  string `gorm:"column:ca_city"`
	CaState string `gorm:"column:ca_state"`

	CustomerCode   string `gorm:"column:customer_code"`
	CustomerName   string `gorm:"column:customer_name"`
	CustomerStatus string `gorm:"column:customer_status"`
	CustomerPhone  string `gorm:"column:customer_phone"`
	CustomerEmail  string `gorm:"column:customer_email"`

	UserName     string `gorm:"column:user_name"`
	UserEmail    string `gorm:"column:user_email"`
	UserJobTitle string `gorm:"column:user_job_title"`

	SubjectType        string `gorm:"column:subject_type"`
	SubjectDescription string `gorm:"column:subject_description"`

	ModuleName        string `gorm:"column:module_name"`
	ModuleDescription string `gorm:"column:module_description"`

	TypeName     string `gorm:"column:type_name"`
	TypePriority int    `gorm:"column:type_priority"`

	StatusName    string `gorm:"column:status_name"`
	StatusIsFinal bool   `gorm:"column:status_is_final"`
}

const ticketSelect = `atendimento.*,
	cas.codigo_ca AS ca_code, cas.nome_ca AS ca_name, cas.cidade AS ca_city, cas.uf AS ca_state,
	clientes.codigo_cliente AS customer_code, clientes.nome_cliente AS customer_name,
	clientes.status_cliente AS customer_status, clientes.telefone AS customer_phone, clientes.email AS customer_email,
	usuarios.nome_usuario AS user_name, usuarios.email AS user_email, usuarios.cargo AS user_job_title,
	assuntos.tipo_assunto AS subject_type, assuntos.descricao AS subject_description,
	modulos.nome_modulo AS module_name, modulos.descricao AS module_description,
	tipos_atendimento.nome AS type_name, tipos_atendimento.prioridade AS type_priority,
	status_atendimentos.nome AS status_name, status_atendimentos.is_final AS status_is_final`

func projectTicket(q *gorm.DB) *gorm.DB {
	return q.Select(ticketSelect)
}

func (r *GormRepo) activeTickets(ctx context.Context) *gorm.DB {
	return r.db(ctx).Table("atendimento").
		Joins("LEFT JOIN cas ON cas.id = atendimento.ca_id").
		Joins("LEFT JOIN clientes ON clientes.id = atendimento.cliente_id").
		Joins("LEFT JOIN usuarios ON usuarios.id = atendimento.usuario_id").
		Joins("LEFT JOIN assuntos ON assuntos.id = atendimento.assunto_id").
		Joins("LEFT JOIN modulos ON modulos.id = atendimento.modulo_id").
		Joins("LEFT JOIN tipos_atendimento ON tipos_atendimento.id = atendimento.tipo_atendimento_id").
		Joins("LEFT JOIN status_atendimentos ON status_atendimentos.id = atendimento.status_id").
		Where("atendimento.is_active = ?", true)
}

func (r *GormRepo) ListTickets(ctx context.Context, f transport.TicketFilter, page util.PageRequest) ([]TicketRow, int64, error) {
	base := func() *gorm.DB {
		q := r.activeTickets(ctx)
		if f.OwnerID != 0 {
			q = q.Where("atendimento.usuario_id = ?", f.OwnerID)
		}
		if f.ServiceCenterID != nil {
			q = q.Where("atendimento.ca_id = ?", *f.ServiceCenterID)
		}
		if f.CustomerID != nil {
			q = q.Where("atendimento.cliente_id = ?", *f.CustomerID)
		}
		if f.StatusID != nil {
			q = q.Where("atendimento.status_id = ?", *f.StatusID)
		}
		if f.From != nil {
			q = q.Where("atendimento.data_inicio >= ?", *f.From)
		}
		if f.To != nil {
			q = q.Where("atendimento.data_inicio <= ?", *f.To)
		}
		return q.Scopes(search(f.Search,
			"atendimento.numero_ticket", "atendimento.titulo", "atendimento.descricao",
			"clientes.nome_cliente", "cas.nome_ca"))
	}
	var rows []TicketRow
	total, err := paginate(base, projectTicket, page, "atendimento.data_inicio DESC, atendimento.id DESC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormRepo) GetTicketRow(ctx context.Context, id uint) (*TicketRow, error) {
	var rows []TicketRow
	if err := projectTicket(r.activeTickets(ctx).Where("atendimento.id = ?", id)).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// GetActiveTicket loads a ticket that has not been soft-deleted.
func (r *GormRepo) GetActiveTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	var t models.Ticket
	if err := r.db(ctx).Where("is_active = ?", true).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// LastTicket returns gorm.ErrRecordNotFound when there are no tickets.
func (r *GormRepo) LastTicket(ctx context.Context) (*models.Ticket, error) {
	var t models.Ticket
	res := r.db(ctx).Order("id DESC").Limit(1).Find(&t)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r *GormRepo) CountAllTickets(ctx context.Context) (int64, error) {
	var n int64
	err := r.db(ctx).Model(&models.Ticket{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountActiveTicketsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	q := r.db(ctx).Model(&models.Ticket{}).Where("is_active = ?", true)
	if !since.IsZero() {
		q = q.Where("data_inicio >= ?", since)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *GormRepo) CreateTicket(ctx context.Context, t *models.Ticket) error {
	return r.db(ctx).Create(t).Error
}

func (r *GormRepo) SaveTicket(ctx context.Context, t *models.Ticket) error {
	return r.db(ctx).Save(t).Error
}

// TicketStatistics counts active tickets per lifecycle bucket; ownerID 0 counts everyone's.
func (r *GormRepo) TicketStatistics(ctx context.Context, ownerID uint) (transport.TicketStatistics, error) {
	var rows []struct {
		StatusID uint
		Total    int64
	}
	q := r.db(ctx).Model(&models.Ticket{}).
		Select("status_id, COUNT(*) AS total").
		Where("is_active = ?", true)
	if ownerID != 0 {
		q = q.Where("usuario_id = ?", ownerID)
	}
	if err := q.Group("status_id").Scan(&rows).Error; err != nil {
		return transport.TicketStatistics{}, err
	}

	var out transport.TicketStatistics
	for _, row := range rows {
		out.Total += row.Total
		switch row.StatusID {
		case models.StatusOpen:
			out.Open += row.Total
		case models.StatusInProgress:
			out.InProgress += row.Total
		case models.StatusResolved:
			out.Resolved += row.Total
		case models.StatusCancelled:
			out.Cancelled += row.Total
		}
	}
	return out, nil
}
