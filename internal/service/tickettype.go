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
	msgTicketTypeNotFound = "tipo de atendimento não encontrado"
	msgTicketTypeName     = "já existe um tipo de atendimento com este nome"
)

type TicketTypeService struct {
	Repo *repo.GormRepo
}

func newTicketTypeResponse(t models.TicketType) transport.TicketTypeResponse {
	return transport.TicketTypeResponse{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Priority:      t.Priority,
		PriorityLabel: models.PriorityLabels[t.Priority],
	}
}

func validPriority(p int) bool {
	return p >= models.PriorityLow && p <= models.PriorityUrgent
}

func (s *TicketTypeService) Priorities() []transport.PriorityOption {
	out := make([]transport.PriorityOption, 0, len(models.PriorityLabels))
	for p := models.PriorityLow; p <= models.PriorityUrgent; p++ {
		out = append(out, transport.PriorityOption{Value: p, Label: models.PriorityLabels[p]})
	}
	return out
}

func (s *TicketTypeService) List(ctx context.Context, f transport.TicketTypeFilter, page util.PageRequest) (util.Page[transport.TicketTypeResponse], error) {
	items, total, err := s.Repo.ListTicketTypes(ctx, f, page)
	if err != nil {
		return util.Page[transport.TicketTypeResponse]{}, err
	}
	return util.MapPage(util.NewPage(items, total, page), newTicketTypeResponse), nil
}

func (s *TicketTypeService) Get(ctx context.Context, id uint) (*transport.TicketTypeResponse, error) {
	t, err := s.Repo.GetTicketType(ctx, id)
	if err != nil {
		return nil, lookup(err, msgTicketTypeNotFound)
	}
	resp := newTicketTypeResponse(*t)
	return &resp, nil
}

func (s *TicketTypeService) Statistics(ctx context.Context) ([]transport.TicketTypeStatistics, error) {
	out, err := s.Repo.TicketTypeStatistics(ctx)
	if out == nil {
		out = []transport.TicketTypeStatistics{}
	}
	return out, err
}

func (s *TicketTypeService) Create(ctx context.Context, req transport.TicketTypeRequest) (*transport.TicketTypeResponse, error) {
	t := models.TicketType{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Priority:    req.Priority,
	}
	if t.Name == "" {
		return nil, validation("nome do tipo de atendimento é obrigatório")
	}
	if !validPriority(t.Priority) {
		return nil, validation("prioridade deve estar entre 1 e 4")
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		taken, err := tx.TicketTypeNameTaken(ctx, t.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflict(msgTicketTypeName)
		}
		return duplicate(tx.CreateTicketType(ctx, &t), msgTicketTypeName)
	})
	if err != nil {
		return nil, err
	}
	resp := newTicketTypeResponse(t)
	return &resp, nil
}

func (s *TicketTypeService) Update(ctx context.Context, id uint, req transport.TicketTypeRequest) (*transport.TicketTypeResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validation("nome do tipo de atendimento é obrigatório")
	}
	if !validPriority(req.Priority) {
		return nil, validation("prioridade deve estar entre 1 e 4")
	}

	var out models.TicketType
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		t, err := tx.GetTicketType(ctx, id)
		if err != nil {
			return lookup(err, msgTicketTypeNotFound)
		}
		if name != t.Name {
			taken, err := tx.TicketTypeNameTaken(ctx, name, t.ID)
			if err != nil {
				return err
			}
			if taken {
				return conflict(msgTicketTypeName)
			}
		}
		t.Name = name
		t.Description = strings.TrimSpace(req.Description)
		t.Priority = req.Priority
		out = *t
		return duplicate(tx.SaveTicketType(ctx, t), msgTicketTypeName)
	})
	if err != nil {
		return nil, err
	}
	resp := newTicketTypeResponse(out)
	return &resp, nil
}

func (s *TicketTypeService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetTicketType(ctx, id); err != nil {
			return lookup(err, msgTicketTypeNotFound)
		}
		n, err := tx.CountTicketsWhere(ctx, "tipo_atendimento_id", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return inUse("não é possível excluir tipo de atendimento com atendimentos ativos")
		}
		return lookup(tx.DeleteTicketType(ctx, id), msgTicketTypeNotFound)
	})
}
