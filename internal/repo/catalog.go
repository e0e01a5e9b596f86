package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

type ModuleRow struct {
	models.Module `gorm:"embedded"`
	TotalSubjects int64 `gorm:"column:total_subjects"`
}

const moduleSelect = `modulos.*,
	(SELECT COUNT(*) FROM assuntos WHERE assuntos.modulo_id = modulos.id) AS total_subjects`

func projectModule(q *gorm.DB) *gorm.DB {
	return q.Select(moduleSelect)
}

func (r *GormRepo) ListModules(ctx context.Context, term string, page util.PageRequest) ([]ModuleRow, int64, error) {
	base := func() *gorm.DB {
		return r.db(ctx).Table("modulos").Scopes(search(term, "modulos.nome_modulo", "modulos.descricao"))
	}
	var rows []ModuleRow
	total, err := paginate(base, projectModule, page, "modulos.nome_modulo ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormRepo) GetModuleRow(ctx context.Context, id uint) (*ModuleRow, error) {
	var rows []ModuleRow
	if err := projectModule(r.db(ctx).Table("modulos").Where("modulos.id = ?", id)).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *GormRepo) GetModule(ctx context.Context, id uint) (*models.Module, error) {
	var m models.Module
	if err := r.db(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormRepo) ModuleNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	q := r.db(ctx).Model(&models.Module{}).Where("nome_modulo = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return exists(q)
}

func (r *GormRepo) CreateModule(ctx context.Context, m *models.Module) error {
	return r.db(ctx).Create(m).Error
}

func (r *GormRepo) SaveModule(ctx context.Context, m *models.Module) error {
	return r.db(ctx).Save(m).Error
}

func (r *GormRepo) DeleteModule(ctx context.Context, id uint) error {
	res := r.db(ctx).Delete(&models.Module{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CountSubjects(ctx context.Context, moduleID uint) (int64, error) {
	var n int64
	err := r.db(ctx).Model(&models.Subject{}).Where("modulo_id = ?", moduleID).Count(&n).Error
	return n, err
}

// CountTicketsWhere counts active tickets matching a single column value.
func (r *GormRepo) CountTicketsWhere(ctx context.Context, column string, value any) (int64, error) {
	var n int64
	err := r.db(ctx).Model(&models.Ticket{}).
		Where("is_active = ?", true).
		Where(column+" = ?", value).
		Count(&n).Error
	return n, err
}

// CountAllTicketsWhere also counts soft-deleted tickets.
func (r *GormRepo) CountAllTicketsWhere(ctx context.Context, column string, value any) (int64, error) {
	var n int64
	err := r.db(ctx).Model(&models.Ticket{}).Where(column+" = ?", value).Count(&n).Error
	return n, err
}

func (r *GormRepo) ModuleTicketsByStatus(ctx context.Context, moduleID uint) ([]transport.StatusCount, error) {
	var out []transport.StatusCount
	err := r.db(ctx).Table("atendimento").
		Select("status_atendimentos.nome AS status, COUNT(*) AS total").
		Joins("JOIN status_atendimentos ON status_atendimentos.id = atendimento.status_id").
		Where("atendimento.modulo_id = ? AND atendimento.is_active = ?", moduleID, true).
		Group("status_atendimentos.id, status_atendimentos.nome, status_atendimentos.ordem").
		Order("status_atendimentos.ordem ASC").
		Scan(&out).Error
	if out == nil {
		out = []transport.StatusCount{}
	}
	return out, err
}

type SubjectRow struct {
	models.Subject `gorm:"embedded"`
	ModuleName     string `gorm:"column:module_name"`
}

func projectSubject(q *gorm.DB) *gorm.DB {
	return q.Select("assuntos.*, modulos.nome_modulo AS module_name")
}

func (r *GormRepo) subjects(ctx context.Context) *gorm.DB {
	return r.db(ctx).Table("assuntos").Joins("LEFT JOIN modulos ON modulos.id = assuntos.modulo_id")
}

func (r *GormRepo) ListSubjects(ctx context.Context, f transport.SubjectFilter, page util.PageRequest) ([]SubjectRow, int64, error) {
	base := func() *gorm.DB {
		q := r.subjects(ctx)
		if f.ModuleID != nil {
			q = q.Where("assuntos.modulo_id = ?", *f.ModuleID)
		}
		return q.Scopes(search(f.Search, "assuntos.tipo_assunto", "assuntos.descricao", "modulos.nome_modulo"))
	}
	var rows []SubjectRow
	total, err := paginate(base, projectSubject, page, "modulos.nome_modulo ASC, assuntos.tipo_assunto ASC", &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormRepo) ListSubjectsOfModule(ctx context.Context, moduleID uint) ([]SubjectRow, error) {
	var rows []SubjectRow
	err := projectSubject(r.subjects(ctx).Where("assuntos.modulo_id = ?", moduleID)).
		Order("assuntos.tipo_assunto ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormRepo) GetSubjectRow(ctx context.Context, id uint) (*SubjectRow, error) {
	var rows []SubjectRow
	if err := projectSubject(r.subjects(ctx).Where("assuntos.id = ?", id)).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *GormRepo) GetSubject(ctx context.Context, id uint) (*models.Subject, error) {
	var s models.Subject
	if err := r.db(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) SubjectTypeTaken(ctx context.Context, moduleID uint, typ string, excludeID uint) (bool, error) {
	q := r.db(ctx).Model(&models.Subject{}).Where("modulo_id = ? AND tipo_assunto = ?", moduleID, typ)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return exists(q)
}

func (r *GormRepo) CreateSubject(ctx context.Context, s *models.Subject) error {
	return r.db(ctx).Create(s).Error
}

func (r *GormRepo) SaveSubject(ctx context.Context, s *models.Subject) error {
	return r.db(ctx).Save(s).Error
}

func (r *GormRepo) DeleteSubject(ctx context.Context, id uint) error {
	res := r.db(ctx).Delete(&models.Subject{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListTicketTypes(ctx context.Context, f transport.TicketTypeFilter, page util.PageRequest) ([]models.TicketType, int64, error) {
	base := func() *gorm.DB {
		q := r.db(ctx).Model(&models.TicketType{})
		if f.Priority != nil {
			q = q.Where("prioridade = ?", *f.Priority)
		}
		return q.Scopes(search(f.Search, "nome", "descricao"))
	}
	var items []models.TicketType
	total, err := paginate(base, nil, page, "prioridade DESC, nome ASC", &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepo) GetTicketType(ctx context.Context, id uint) (*models.TicketType, error) {
	var t models.TicketType
	if err := r.db(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormRepo) TicketTypeNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	q := r.db(ctx).Model(&models.TicketType{}).Where("nome = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return exists(q)
}

func (r *GormRepo) CreateTicketType(ctx context.Context, t *models.TicketType) error {
	return r.db(ctx).Create(t).Error
}

func (r *GormRepo) SaveTicketType(ctx context.Context, t *models.TicketType) error {
	return r.db(ctx).Save(t).Error
}

func (r *GormRepo) DeleteTicketType(ctx context.Context, id uint) error {
	res := r.db(ctx).Delete(&models.TicketType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) TicketTypeStatistics(ctx context.Context) ([]transport.TicketTypeStatistics, error) {
	var out []transport.TicketTypeStatistics
	err := r.db(ctx).Table("tipos_atendimento").
		Select(`tipos_atendimento.id AS id, tipos_atendimento.nome AS name, tipos_atendimento.prioridade AS priority,
			COUNT(atendimento.id) AS total_tickets,
			COALESCE(SUM(CASE WHEN atendimento.status_id = ? THEN 1 ELSE 0 END), 0) AS open_tickets,
			COALESCE(SUM(CASE WHEN atendimento.status_id = ? THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN atendimento.status_id = ? THEN 1 ELSE 0 END), 0) AS resolved_tickets`,
			models.StatusOpen, models.StatusInProgress, models.StatusResolved).
		Joins("LEFT JOIN atendimento ON atendimento.tipo_atendimento_id = tipos_atendimento.id AND atendimento.is_active = ?", true).
		Group("tipos_atendimento.id, tipos_atendimento.nome, tipos_atendimento.prioridade").
		Order("total_tickets DESC, tipos_atendimento.nome ASC").
		Scan(&out).Error
	return out, err
}

func (r *GormRepo) ListStatuses(ctx context.Context) ([]models.TicketStatus, error) {
	var out []models.TicketStatus
	err := r.db(ctx).Order("ordem ASC").Find(&out).Error
	return out, err
}

func (r *GormRepo) GetStatus(ctx context.Context, id uint) (*models.TicketStatus, error) {
	var st models.TicketStatus
	if err := r.db(ctx).First(&st, id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
