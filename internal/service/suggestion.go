package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
)

const msgSuggestionNotFound = "sugestão não encontrada"

type SuggestionService struct {
	Repo *repo.GormRepo
}

func newSuggestionResponse(row repo.SuggestionRow) transport.SuggestionResponse {
	return transport.SuggestionResponse{
		ID:                row.ID,
		Title:             row.Title,
		Content:           row.Content,
		IsRead:            row.IsRead,
		UserID:            row.UserID,
		UserName:          row.UserName,
		UserEmail:         row.UserEmail,
		CustomerID:        row.CustomerID,
		CustomerName:      row.CustomerName,
		CustomerCode:      row.CustomerCode,
		ServiceCenterID:   row.ServiceCenterID,
		ServiceCenterName: row.CaName,
		ServiceCenterCode: row.CaCode,
		CreatedAt:         row.CreatedAt,
	}
}

func (s *SuggestionService) List(ctx context.Context, caller access.Identity, f transport.SuggestionFilter, page util.PageRequest) (util.Page[transport.SuggestionResponse], error) {
	f.OwnerID = caller.OwnerScope()
	rows, total, err := s.Repo.ListSuggestions(ctx, f, page)
	if err != nil {
		return util.Page[transport.SuggestionResponse]{}, err
	}
	return util.MapPage(util.NewPage(rows, total, page), newSuggestionResponse), nil
}

func (s *SuggestionService) authorize(ctx context.Context, r *repo.GormRepo, caller access.Identity, id uint) (*models.Suggestion, error) {
	sug, err := r.GetSuggestion(ctx, id)
	if err != nil {
		return nil, lookup(err, msgSuggestionNotFound)
	}
	if !caller.Owns(sug.UserID) {
		return nil, forbidden("sem permissão para acessar esta sugestão")
	}
	return sug, nil
}

func (s *SuggestionService) row(ctx context.Context, id uint) (*transport.SuggestionResponse, error) {
	row, err := s.Repo.GetSuggestionRow(ctx, id)
	if err != nil {
		return nil, lookup(err, msgSuggestionNotFound)
	}
	resp := newSuggestionResponse(*row)
	return &resp, nil
}

func (s *SuggestionService) Get(ctx context.Context, caller access.Identity, id uint) (*transport.SuggestionResponse, error) {
	if _, err := s.authorize(ctx, s.Repo, caller, id); err != nil {
		return nil, err
	}
	return s.row(ctx, id)
}

func checkSuggestionRefs(ctx context.Context, tx *repo.GormRepo, customerID, serviceCenterID *uint) error {
	if customerID != nil && *customerID != 0 {
		cust, err := tx.GetCustomer(ctx, *customerID)
		if err != nil {
			return lookup(err, msgCustomerNotFound)
		}
		if !cust.IsActive {
			return validation("cliente inativo")
		}
	}
	if serviceCenterID != nil && *serviceCenterID != 0 {
		if err := requireActiveServiceCenter(ctx, tx, *serviceCenterID); err != nil {
			return err
		}
	}
	return nil
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func (s *SuggestionService) Create(ctx context.Context, caller access.Identity, req transport.CreateSuggestionRequest) (*transport.SuggestionResponse, error) {
	sug := models.Suggestion{
		Title:           strings.TrimSpace(req.Title),
		Content:         strings.TrimSpace(req.Content),
		UserID:          caller.UserID,
		CustomerID:      nonZero(req.CustomerID),
		ServiceCenterID: nonZero(req.ServiceCenterID),
	}
	if sug.Title == "" || sug.Content == "" {
		return nil, validation("título e conteúdo são obrigatórios")
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := checkSuggestionRefs(ctx, tx, sug.CustomerID, sug.ServiceCenterID); err != nil {
			return err
		}
		return tx.CreateSuggestion(ctx, &sug)
	})
	if err != nil {
		return nil, err
	}
	return s.row(ctx, sug.ID)
}

func (s *SuggestionService) Update(ctx context.Context, caller access.Identity, id uint, req transport.UpdateSuggestionRequest) (*transport.SuggestionResponse, error) {
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		sug, err := s.authorize(ctx, tx, caller, id)
		if err != nil {
			return err
		}
		if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
			sug.Title = strings.TrimSpace(*req.Title)
		}
		if req.Content != nil && strings.TrimSpace(*req.Content) != "" {
			sug.Content = strings.TrimSpace(*req.Content)
		}
		if req.CustomerID != nil {
			sug.CustomerID = nonZero(req.CustomerID)
		}
		if req.ServiceCenterID != nil {
			sug.ServiceCenterID = nonZero(req.ServiceCenterID)
		}
		if err := checkSuggestionRefs(ctx, tx, req.CustomerID, req.ServiceCenterID); err != nil {
			return err
		}
		return tx.SaveSuggestion(ctx, sug)
	})
	if err != nil {
		return nil, err
	}
	return s.row(ctx, id)
}

// MarkRead sets the read flag either way.
func (s *SuggestionService) MarkRead(ctx context.Context, id uint, read bool) error {
	return lookup(s.Repo.MarkSuggestionRead(ctx, id, read), msgSuggestionNotFound)
}

func (s *SuggestionService) Delete(ctx context.Context, caller access.Identity, id uint) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := s.authorize(ctx, tx, caller, id); err != nil {
			return err
		}
		return lookup(tx.DeleteSuggestion(ctx, id), msgSuggestionNotFound)
	})
}

func (s *SuggestionService) Statistics(ctx context.Context) (transport.SuggestionStatistics, error) {
	return s.Repo.SuggestionStatistics(ctx, startOfDay(nowUTC()))
}
