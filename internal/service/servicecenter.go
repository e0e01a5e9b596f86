package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

const (
	msgServiceCenterNotFound = "CA não encontrado"
	msgServiceCenterCode     = "código do CA já cadastrado"
)

type ServiceCenterService struct {
	Repo *repo.GormRepo
}

func newServiceCenterResponse(row repo.ServiceCenterRow) transport.ServiceCenterResponse {
	return transport.ServiceCenterResponse{
		ID:           row.ID,
		Code:         row.Code,
		Name:         row.Name,
		City:         row.City,
		State:        row.State,
		Phone:        row.Phone,
		Email:        row.Email,
		Manager:      row.Manager,
		IsActive:     row.IsActive,
		TotalClients: row.TotalClients,
		TotalTickets: row.TotalTickets,
	}
}

func (s *ServiceCenterService) List(ctx context.Context, f transport.ServiceCenterFilter, page util.PageRequest) (util.Page[transport.ServiceCenterResponse], error) {
	rows, total, err := s.Repo.ListServiceCenters(ctx, f, page)
	if err != nil {
		return util.Page[transport.ServiceCenterResponse]{}, err
	}
	return util.MapPage(util.NewPage(rows, total, page), newServiceCenterResponse), nil
}

func (s *ServiceCenterService) Get(ctx context.Context, id uint) (*transport.ServiceCenterResponse, error) {
	row, err := s.Repo.GetServiceCenterRow(ctx, id)
	if err != nil {
		return nil, lookup(err, msgServiceCenterNotFound)
	}
	resp := newServiceCenterResponse(*row)
	return &resp, nil
}

func (s *ServiceCenterService) GetByCode(ctx context.Context, code string) (*transport.ServiceCenterResponse, error) {
	row, err := s.Repo.GetServiceCenterRowByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, lookup(err, msgServiceCenterNotFound)
	}
	resp := newServiceCenterResponse(*row)
	return &resp, nil
}

func applyServiceCenter(ca *models.ServiceCenter, req transport.ServiceCenterRequest) {
	ca.Code = strings.TrimSpace(req.Code)
	ca.Name = strings.TrimSpace(req.Name)
	ca.City = strings.TrimSpace(req.City)
	ca.State = strings.ToUpper(strings.TrimSpace(req.State))
	ca.Phone = strings.TrimSpace(req.Phone)
	ca.Email = NormalizeEmail(req.Email)
	ca.Manager = strings.TrimSpace(req.Manager)
}

func (s *ServiceCenterService) Create(ctx context.Context, req transport.ServiceCenterRequest) (*transport.ServiceCenterResponse, error) {
	ca := models.ServiceCenter{IsActive: true}
	applyServiceCenter(&ca, req)
	if ca.Code == "" || ca.Name == "" {
		return nil, validation("código e nome do CA são obrigatórios")
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		taken, err := tx.ServiceCenterCodeTaken(ctx, ca.Code, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflict(msgServiceCenterCode)
		}
		return duplicate(tx.CreateServiceCenter(ctx, &ca), msgServiceCenterCode)
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("service_center_created", "svc", "ca.create", "ca_id", ca.ID)
	return s.Get(ctx, ca.ID)
}

func (s *ServiceCenterService) Update(ctx context.Context, id uint, req transport.ServiceCenterRequest) (*transport.ServiceCenterResponse, error) {
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		ca, err := tx.GetServiceCenter(ctx, id)
		if err != nil {
			return lookup(err, msgServiceCenterNotFound)
		}
		if !ca.IsActive {
			return notFound(msgServiceCenterNotFound)
		}

		oldCode := ca.Code
		applyServiceCenter(ca, req)
		if ca.Code == "" || ca.Name == "" {
			return validation("código e nome do CA são obrigatórios")
		}
		if ca.Code != oldCode {
			taken, err := tx.ServiceCenterCodeTaken(ctx, ca.Code, ca.ID)
			if err != nil {
				return err
			}
			if taken {
				return conflict(msgServiceCenterCode)
			}
		}
		return duplicate(tx.SaveServiceCenter(ctx, ca), msgServiceCenterCode)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes the service center once it has no active customers.
func (s *ServiceCenterService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		ca, err := tx.GetServiceCenter(ctx, id)
		if err != nil {
			return lookup(err, msgServiceCenterNotFound)
		}
		if !ca.IsActive {
			return notFound(msgServiceCenterNotFound)
		}
		n, err := tx.CountActiveCustomers(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return inUse("não é possível excluir CA com clientes ativos")
		}
		ca.IsActive = false
		return tx.SaveServiceCenter(ctx, ca)
	})
}
