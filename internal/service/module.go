package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

const (
	msgModuleNotFound = "módulo não encontrado"
	msgModuleName     = "já existe um módulo com este nome"
)

type ModuleService struct {
	Repo *repo.GormRepo
}

func newModuleResponse(row repo.ModuleRow) transport.ModuleResponse {
	return transport.ModuleResponse{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		TotalSubjects: row.TotalSubjects,
	}
}

func (s *ModuleService) List(ctx context.Context, term string, page util.PageRequest) (util.Page[transport.ModuleResponse], error) {
	rows, total, err := s.Repo.ListModules(ctx, term, page)
	if err != nil {
		return util.Page[transport.ModuleResponse]{}, err
	}
	return util.MapPage(util.NewPage(rows, total, page), newModuleResponse), nil
}

func (s *ModuleService) Get(ctx context.Context, id uint) (*transport.ModuleResponse, error) {
	row, err := s.Repo.GetModuleRow(ctx, id)
	if err != nil {
		return nil, lookup(err, msgModuleNotFound)
	}
	resp := newModuleResponse(*row)
	return &resp, nil
}

func (s *ModuleService) Subjects(ctx context.Context, id uint) ([]transport.SubjectResponse, error) {
	if _, err := s.Repo.GetModule(ctx, id); err != nil {
		return nil, lookup(err, msgModuleNotFound)
	}
	rows, err := s.Repo.ListSubjectsOfModule(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]transport.SubjectResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, newSubjectResponse(row))
	}
	return out, nil
}

func (s *ModuleService) Statistics(ctx context.Context, id uint) (*transport.ModuleStatistics, error) {
	mod, err := s.Repo.GetModule(ctx, id)
	if err != nil {
		return nil, lookup(err, msgModuleNotFound)
	}
	subjects, err := s.Repo.CountSubjects(ctx, id)
	if err != nil {
		return nil, err
	}
	tickets, err := s.Repo.CountTicketsWhere(ctx, "modulo_id", id)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Repo.ModuleTicketsByStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	return &transport.ModuleStatistics{
		ModuleID:        mod.ID,
		ModuleName:      mod.Name,
		TotalSubjects:   subjects,
		TotalTickets:    tickets,
		TicketsByStatus: byStatus,
	}, nil
}

func (s *ModuleService) Create(ctx context.Context, req transport.ModuleRequest) (*transport.ModuleResponse, error) {
	mod := models.Module{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if mod.Name == "" {
		return nil, validation("nome do módulo é obrigatório")
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		taken, err := tx.ModuleNameTaken(ctx, mod.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflict(msgModuleName)
		}
		return duplicate(tx.CreateModule(ctx, &mod), msgModuleName)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, mod.ID)
}

func (s *ModuleService) Update(ctx context.Context, id uint, req transport.ModuleRequest) (*transport.ModuleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validation("nome do módulo é obrigatório")
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		mod, err := tx.GetModule(ctx, id)
		if err != nil {
			return lookup(err, msgModuleNotFound)
		}
		if name != mod.Name {
			taken, err := tx.ModuleNameTaken(ctx, name, mod.ID)
			if err != nil {
				return err
			}
			if taken {
				return conflict(msgModuleName)
			}
		}
		mod.Name = name
		mod.Description = strings.TrimSpace(req.Description)
		return duplicate(tx.SaveModule(ctx, mod), msgModuleName)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a module that has neither subjects nor tickets.
func (s *ModuleService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetModule(ctx, id); err != nil {
			return lookup(err, msgModuleNotFound)
		}
		subjects, err := tx.CountSubjects(ctx, id)
		if err != nil {
			return err
		}
		if subjects > 0 {
			return inUse("não é possível excluir módulo com assuntos vinculados")
		}
		tickets, err := tx.CountAllTicketsWhere(ctx, "modulo_id", id)
		if err != nil {
			return err
		}
		if tickets > 0 {
			return inUse("não é possível excluir módulo com atendimentos vinculados")
		}
		return lookup(tx.DeleteModule(ctx, id), msgModuleNotFound)
	})
}
