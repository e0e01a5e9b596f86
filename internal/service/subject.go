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
	msgSubjectNotFound = "assunto não encontrado"
	msgSubjectType     = "já existe este assunto para o módulo"
)

type SubjectService struct {
	Repo *repo.GormRepo
}

func newSubjectResponse(row repo.SubjectRow) transport.SubjectResponse {
	return transport.SubjectResponse{
		ID:          row.ID,
		Type:        row.Type,
		ModuleID:    row.ModuleID,
		Description: row.Description,
		ModuleName:  row.ModuleName,
	}
}

func (s *SubjectService) List(ctx context.Context, f transport.SubjectFilter, page util.PageRequest) (util.Page[transport.SubjectResponse], error) {
	rows, total, err := s.Repo.ListSubjects(ctx, f, page)
	if err != nil {
		return util.Page[transport.SubjectResponse]{}, err
	}
	return util.MapPage(util.NewPage(rows, total, page), newSubjectResponse), nil
}

func (s *SubjectService) ByModule(ctx context.Context, moduleID uint) ([]transport.SubjectResponse, error) {
	rows, err := s.Repo.ListSubjectsOfModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.SubjectResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, newSubjectResponse(row))
	}
	return out, nil
}

func (s *SubjectService) Get(ctx context.Context, id uint) (*transport.SubjectResponse, error) {
	row, err := s.Repo.GetSubjectRow(ctx, id)
	if err != nil {
		return nil, lookup(err, msgSubjectNotFound)
	}
	resp := newSubjectResponse(*row)
	return &resp, nil
}

func (s *SubjectService) Create(ctx context.Context, req transport.SubjectRequest) (*transport.SubjectResponse, error) {
	subj := models.Subject{
		ModuleID:    req.ModuleID,
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
	}
	if subj.Type == "" || subj.ModuleID == 0 {
		return nil, validation("tipo do assunto e módulo são obrigatórios")
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetModule(ctx, subj.ModuleID); err != nil {
			return lookup(err, msgModuleNotFound)
		}
		taken, err := tx.SubjectTypeTaken(ctx, subj.ModuleID, subj.Type, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflict(msgSubjectType)
		}
		return duplicate(tx.CreateSubject(ctx, &subj), msgSubjectType)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, subj.ID)
}

func (s *SubjectService) Update(ctx context.Context, id uint, req transport.SubjectRequest) (*transport.SubjectResponse, error) {
	typ := strings.TrimSpace(req.Type)
	if typ == "" || req.ModuleID == 0 {
		return nil, validation("tipo do assunto e módulo são obrigatórios")
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		subj, err := tx.GetSubject(ctx, id)
		if err != nil {
			return lookup(err, msgSubjectNotFound)
		}
		if req.ModuleID != subj.ModuleID {
			if _, err := tx.GetModule(ctx, req.ModuleID); err != nil {
				return lookup(err, msgModuleNotFound)
			}
		}
		if req.ModuleID != subj.ModuleID || typ != subj.Type {
			taken, err := tx.SubjectTypeTaken(ctx, req.ModuleID, typ, subj.ID)
			if err != nil {
				return err
			}
			if taken {
				return conflict(msgSubjectType)
			}
		}
		subj.ModuleID = req.ModuleID
		subj.Type = typ
		subj.Description = strings.TrimSpace(req.Description)
		return duplicate(tx.SaveSubject(ctx, subj), msgSubjectType)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *SubjectService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetSubject(ctx, id); err != nil {
			return lookup(err, msgSubjectNotFound)
		}
		n, err := tx.CountTicketsWhere(ctx, "assunto_id", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return inUse("não é possível excluir assunto com atendimentos ativos")
		}
		return lookup(tx.DeleteSubject(ctx, id), msgSubjectNotFound)
	})
}
