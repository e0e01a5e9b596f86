package service

import (
	"context"
	"slices"
	"strings"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

const (
	msgCustomerNotFound = "cliente não encontrado"
	msgCustomerCode     = "código do cliente já cadastrado neste CA"
	msgCustomerStatus   = "status de cliente inválido"
)

type CustomerService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func newCustomerResponse(row repo.CustomerRow) transport.CustomerResponse {
	return transport.CustomerResponse{
		ID:                row.ID,
		Code:              row.Code,
		ServiceCenterID:   row.ServiceCenterID,
		Name:              row.Name,
		CompanyName:       row.CompanyName,
		TaxID:             row.TaxID,
		City:              row.City,
		State:             row.State,
		Phone:             row.Phone,
		Email:             row.Email,
		Manager:           row.Manager,
		Status:            row.Status,
		IsActive:          row.IsActive,
		ServiceCenterName: row.ServiceCenterName,
		ServiceCenterCode: row.ServiceCenterCode,
		TotalTickets:      row.TotalTickets,
	}
}

func NormalizeCustomerStatus(status string) (string, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !slices.Contains(models.CustomerStatuses, status) {
		return "", validation(msgCustomerStatus)
	}
	return status, nil
}

func (s *CustomerService) Statuses() []string {
	return slices.Clone(models.CustomerStatuses)
}

func (s *CustomerService) List(ctx context.Context, f transport.CustomerFilter, page util.PageRequest) (util.Page[transport.CustomerResponse], error) {
	if f.Status != "" {
		f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	}
	rows, total, err := s.Repo.ListCustomers(ctx, f, page)
	if err != nil {
		return util.Page[transport.CustomerResponse]{}, err
	}
	return util.MapPage(util.NewPage(rows, total, page), newCustomerResponse), nil
}

func (s *CustomerService) ByServiceCenter(ctx context.Context, serviceCenterID uint) ([]transport.CustomerResponse, error) {
	rows, err := s.Repo.ServiceCenterCustomers(ctx, serviceCenterID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.CustomerResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, newCustomerResponse(row))
	}
	return out, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*transport.CustomerResponse, error) {
	row, err := s.Repo.GetCustomerRow(ctx, id)
	if err != nil {
		return nil, lookup(err, msgCustomerNotFound)
	}
	resp := newCustomerResponse(*row)
	return &resp, nil
}

func (s *CustomerService) GetByCode(ctx context.Context, serviceCenterID uint, code string) (*transport.CustomerResponse, error) {
	row, err := s.Repo.GetCustomerRowByCode(ctx, serviceCenterID, strings.TrimSpace(code))
	if err != nil {
		return nil, lookup(err, msgCustomerNotFound)
	}
	resp := newCustomerResponse(*row)
	return &resp, nil
}

func applyCustomer(c *models.Customer, req transport.CustomerRequest) error {
	c.Code = strings.TrimSpace(req.Code)
	c.ServiceCenterID = req.ServiceCenterID
	c.Name = strings.TrimSpace(req.Name)
	c.CompanyName = strings.TrimSpace(req.CompanyName)
	c.TaxID = strings.TrimSpace(req.TaxID)
	c.City = strings.TrimSpace(req.City)
	c.State = strings.ToUpper(strings.TrimSpace(req.State))
	c.Phone = strings.TrimSpace(req.Phone)
	c.Email = NormalizeEmail(req.Email)
	c.Manager = strings.TrimSpace(req.Manager)

	if c.Code == "" || c.Name == "" || c.ServiceCenterID == 0 {
		return validation("código, nome e CA do cliente são obrigatórios")
	}
	if req.Status != "" {
		status, err := NormalizeCustomerStatus(req.Status)
		if err != nil {
			return err
		}
		c.Status = status
	}
	if c.Status == "" {
		c.Status = models.CustomerActive
	}
	return nil
}

func requireActiveServiceCenter(ctx context.Context, tx *repo.GormRepo, id uint) error {
	ca, err := tx.GetServiceCenter(ctx, id)
	if err != nil {
		return lookup(err, msgServiceCenterNotFound)
	}
	if !ca.IsActive {
		return validation("CA inativo")
	}
	return nil
}

func (s *CustomerService) Create(ctx context.Context, req transport.CustomerRequest) (*transport.CustomerResponse, error) {
	cust := models.Customer{IsActive: true}
	if err := applyCustomer(&cust, req); err != nil {
		return nil, err
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := requireActiveServiceCenter(ctx, tx, cust.ServiceCenterID); err != nil {
			return err
		}
		taken, err := tx.CustomerCodeTaken(ctx, cust.ServiceCenterID, cust.Code, 0)
		if err != nil {
			return err
		}
		if taken {
			return conflict(msgCustomerCode)
		}
		return duplicate(tx.CreateCustomer(ctx, &cust), msgCustomerCode)
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("customer_created", "svc", "customer.create", "customer_id", cust.ID)
	return s.Get(ctx, cust.ID)
}

func (s *CustomerService) Update(ctx context.Context, id uint, req transport.CustomerRequest) (*transport.CustomerResponse, error) {
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cust, err := tx.GetCustomer(ctx, id)
		if err != nil {
			return lookup(err, msgCustomerNotFound)
		}
		if !cust.IsActive {
			return notFound(msgCustomerNotFound)
		}

		oldCA, oldCode := cust.ServiceCenterID, cust.Code
		if err := applyCustomer(cust, req); err != nil {
			return err
		}
		if cust.ServiceCenterID != oldCA {
			if err := requireActiveServiceCenter(ctx, tx, cust.ServiceCenterID); err != nil {
				return err
			}
		}
		if cust.ServiceCenterID != oldCA || cust.Code != oldCode {
			taken, err := tx.CustomerCodeTaken(ctx, cust.ServiceCenterID, cust.Code, cust.ID)
			if err != nil {
				return err
			}
			if taken {
				return conflict(msgCustomerCode)
			}
		}
		return duplicate(tx.SaveCustomer(ctx, cust), msgCustomerCode)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CustomerService) ChangeStatus(ctx context.Context, caller access.Identity, id uint, status string) error {
	status, err := NormalizeCustomerStatus(status)
	if err != nil {
		return err
	}

	var previous string
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cust, err := tx.GetCustomer(ctx, id)
		if err != nil {
			return lookup(err, msgCustomerNotFound)
		}
		if !cust.IsActive {
			return notFound(msgCustomerNotFound)
		}
		previous = cust.Status
		cust.Status = status
		return tx.SaveCustomer(ctx, cust)
	})
	if err != nil {
		return err
	}

	if previous != status {
		publish(ctx, s.Events, events.New(events.CustomerStatusChanged, caller.UserID, id, map[string]any{
			"from": previous,
			"to":   status,
		}))
	}
	return nil
}

// Delete soft-deletes the customer once it has no active tickets.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cust, err := tx.GetCustomer(ctx, id)
		if err != nil {
			return lookup(err, msgCustomerNotFound)
		}
		if !cust.IsActive {
			return notFound(msgCustomerNotFound)
		}
		n, err := tx.CountTicketsWhere(ctx, "cliente_id", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return inUse("não é possível excluir cliente com atendimentos ativos")
		}
		cust.IsActive = false
		return tx.SaveCustomer(ctx, cust)
	})
}
