package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/access"
	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/internal/search"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	"github.com/Skotchmaster/helpdesk/internal/util"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

const (
	DefaultTicketPrefix = "ATD"
	ticketNumberDigits  = 6
	ticketCreateRetries = 3

	msgTicketNotFound = "atendimento não encontrado"
)

// PrefixSource resolves the configured ticket number prefix.
type PrefixSource interface {
	Value(ctx context.Context, key, def string) string
}

type TicketService struct {
	Repo     *repo.GormRepo
	Settings PrefixSource
	Events   events.Publisher
	Indexer  search.TicketIndexer
	Now      func() time.Time
}

func (s *TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return nowUTC()
}

func (s *TicketService) prefix(ctx context.Context) string {
	if s.Settings == nil {
		return DefaultTicketPrefix
	}
	return s.Settings.Value(ctx, SettingTicketPrefix, DefaultTicketPrefix)
}

func FormatTicketNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s%0*d", prefix, ticketNumberDigits, seq)
}

// nextTicketSequence continues from the newest ticket's number and falls
// back to count+1 when that number does not carry the current prefix.
func nextTicketSequence(ctx context.Context, tx *repo.GormRepo, prefix string) (int64, error) {
	last, err := tx.LastTicket(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if last != nil && strings.HasPrefix(last.Number, prefix) {
		if n, err := strconv.ParseInt(strings.TrimPrefix(last.Number, prefix), 10, 64); err == nil && n >= 0 {
			return n + 1, nil
		}
	}
	count, err := tx.CountAllTickets(ctx)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

func newTicketResponse(row repo.TicketRow) transport.TicketResponse {
	return transport.TicketResponse{
		ID:          row.ID,
		Number:      row.Number,
		Title:       row.Title,
		Description: row.Description,
		Solution:    row.Solution,
		StartedAt:   row.StartedAt,
		EndedAt:     row.EndedAt,
		Notes:       row.Notes,
		ServiceCenter: transport.ServiceCenterBasic{
			ID:    row.ServiceCenterID,
			Code:  row.CaCode,
			Name:  row.CaName,
			City:  row.CaCity,
			State: row.CaState,
		},
		Customer: transport.CustomerBasic{
			ID:     row.CustomerID,
			Code:   row.CustomerCode,
			Name:   row.CustomerName,
			Status: row.CustomerStatus,
			Phone:  row.CustomerPhone,
			Email:  row.CustomerEmail,
		},
		User: transport.UserBasic{
			ID:       row.UserID,
			Name:     row.UserName,
			Email:    row.UserEmail,
			JobTitle: row.UserJobTitle,
		},
		Subject: transport.SubjectBasic{
			ID:          row.SubjectID,
			Type:        row.SubjectType,
			Description: row.SubjectDescription,
		},
		Module: transport.ModuleBasic{
			ID:          row.ModuleID,
			Name:        row.ModuleName,
			Description: row.ModuleDescription,
		},
		Type: transport.TicketTypeBasic{
			ID:       row.TypeID,
			Name:     row.TypeName,
			Priority: row.TypePriority,
		},
		Status: transport.StatusBasic{
			ID:      row.StatusID,
			Name:    row.StatusName,
			IsFinal: row.StatusIsFinal,
		},
	}
}

func (s *TicketService) List(ctx context.Context, caller access.Identity, f transport.TicketFilter, page util.PageRequest) (util.Page[transport.TicketResponse], error) {
	f.OwnerID = caller.OwnerScope()
	rows, total, err := s.Repo.ListTickets(ctx, f, page)
	if err != nil {
		return util.Page[transport.TicketResponse]{}, err
	}
	return util.MapPage(util.NewPage(rows, total, page), newTicketResponse), nil
}

func (s *TicketService) Statistics(ctx context.Context, caller access.Identity) (transport.TicketStatistics, error) {
	return s.Repo.TicketStatistics(ctx, caller.OwnerScope())
}

// authorize loads an active ticket and applies the ownership rule:
// missing or deleted is not found, someone else's is forbidden.
func authorize(ctx context.Context, r *repo.GormRepo, caller access.Identity, id uint) (*models.Ticket, error) {
	t, err := r.GetActiveTicket(ctx, id)
	if err != nil {
		return nil, lookup(err, msgTicketNotFound)
	}
	if !caller.Owns(t.UserID) {
		return nil, forbidden("sem permissão para acessar este atendimento")
	}
	return t, nil
}

func (s *TicketService) Get(ctx context.Context, caller access.Identity, id uint) (*transport.TicketResponse, error) {
	if _, err := authorize(ctx, s.Repo, caller, id); err != nil {
		return nil, err
	}
	row, err := s.Repo.GetTicketRow(ctx, id)
	if err != nil {
		return nil, lookup(err, msgTicketNotFound)
	}
	resp := newTicketResponse(*row)
	return &resp, nil
}

func requireActiveUser(ctx context.Context, tx *repo.GormRepo, id uint) error {
	u, err := tx.GetUser(ctx, id)
	if err != nil {
		return lookup(err, msgUserNotFound)
	}
	if !u.IsActive {
		return validation("usuário responsável inativo")
	}
	return nil
}

func (s *TicketService) checkReferences(ctx context.Context, tx *repo.GormRepo, t *models.Ticket) error {
	if err := requireActiveServiceCenter(ctx, tx, t.ServiceCenterID); err != nil {
		return err
	}
	cust, err := tx.GetCustomer(ctx, t.CustomerID)
	if err != nil {
		return lookup(err, msgCustomerNotFound)
	}
	if !cust.IsActive {
		return validation("cliente inativo")
	}
	if cust.ServiceCenterID != t.ServiceCenterID {
		return validation("cliente não pertence ao CA informado")
	}
	if _, err := tx.GetSubject(ctx, t.SubjectID); err != nil {
		return lookup(err, msgSubjectNotFound)
	}
	if _, err := tx.GetTicketType(ctx, t.TypeID); err != nil {
		return lookup(err, msgTicketTypeNotFound)
	}
	if _, err := tx.GetModule(ctx, t.ModuleID); err != nil {
		return lookup(err, msgModuleNotFound)
	}
	return nil
}

// Create opens a ticket for the caller, or for the assignee an admin names.
// The number is taken inside the insert transaction and the whole attempt
// is retried when another request claimed the same number first.
func (s *TicketService) Create(ctx context.Context, caller access.Identity, req transport.CreateTicketRequest) (*transport.TicketResponse, error) {
	l := logging.FromContext(ctx).With("svc", "ticket.create")

	title := strings.TrimSpace(req.Title)
	desc := strings.TrimSpace(req.Description)
	if title == "" || desc == "" {
		return nil, validation("título e descrição são obrigatórios")
	}

	assignee := caller.UserID
	checkAssignee := false
	if req.UserID != nil && *req.UserID != 0 && caller.IsAdmin {
		assignee = *req.UserID
		checkAssignee = true
	}

	prefix := s.prefix(ctx)
	var ticket models.Ticket
	var err error
	for attempt := 1; attempt <= ticketCreateRetries; attempt++ {
		ticket = models.Ticket{
			ServiceCenterID: req.ServiceCenterID,
			CustomerID:      req.CustomerID,
			UserID:          assignee,
			SubjectID:       req.SubjectID,
			TypeID:          req.TypeID,
			ModuleID:        req.ModuleID,
			StatusID:        models.StatusOpen,
			Title:           title,
			Description:     desc,
			StartedAt:       s.now(),
			IsActive:        true,
		}
		err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
			if err := s.checkReferences(ctx, tx, &ticket); err != nil {
				return err
			}
			if checkAssignee {
				if err := requireActiveUser(ctx, tx, assignee); err != nil {
					return err
				}
			}
			seq, err := nextTicketSequence(ctx, tx, prefix)
			if err != nil {
				return err
			}
			ticket.Number = FormatTicketNumber(prefix, seq)
			return tx.CreateTicket(ctx, &ticket)
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		l.Warn("ticket_number_collision", "attempt", attempt, "number", ticket.Number)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("não foi possível gerar o número do atendimento")
		}
		return nil, err
	}

	l.Info("ticket_created", "ticket_id", ticket.ID, "number", ticket.Number)
	publish(ctx, s.Events, events.New(events.TicketCreated, caller.UserID, ticket.ID, map[string]any{
		"numeroTicket": ticket.Number,
		"usuarioId":    ticket.UserID,
		"clienteId":    ticket.CustomerID,
	}))
	indexTicket(ctx, s.Indexer, ticket)

	row, err := s.Repo.GetTicketRow(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	resp := newTicketResponse(*row)
	return &resp, nil
}

// Update applies the present fields. Only admins reassign a ticket. The
// end time is stamped the first time the status becomes final.
func (s *TicketService) Update(ctx context.Context, caller access.Identity, id uint, req transport.UpdateTicketRequest) error {
	var (
		ticket     models.Ticket
		prevStatus uint
	)
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		t, err := authorize(ctx, tx, caller, id)
		if err != nil {
			return err
		}
		prevStatus = t.StatusID

		if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
			t.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
			t.Description = strings.TrimSpace(*req.Description)
		}
		if req.Solution != nil {
			t.Solution = *req.Solution
		}
		if req.Notes != nil {
			t.Notes = *req.Notes
		}
		if req.UserID != nil && *req.UserID != t.UserID {
			if !caller.IsAdmin {
				return forbidden("apenas administradores podem alterar o responsável")
			}
			if err := requireActiveUser(ctx, tx, *req.UserID); err != nil {
				return err
			}
			t.UserID = *req.UserID
		}
		if req.ModuleID != nil && *req.ModuleID != t.ModuleID {
			if _, err := tx.GetModule(ctx, *req.ModuleID); err != nil {
				return lookup(err, msgModuleNotFound)
			}
			t.ModuleID = *req.ModuleID
		}
		if req.StartedAt != nil {
			t.StartedAt = req.StartedAt.UTC()
		}
		if req.EndedAt != nil {
			end := req.EndedAt.UTC()
			t.EndedAt = &end
		}
		if req.StatusID != nil && *req.StatusID != t.StatusID {
			st, err := tx.GetStatus(ctx, *req.StatusID)
			if err != nil {
				return lookup(err, "status não encontrado")
			}
			t.StatusID = st.ID
			if st.IsFinal && t.EndedAt == nil {
				end := s.now()
				t.EndedAt = &end
			}
		}

		ticket = *t
		return tx.SaveTicket(ctx, t)
	})
	if err != nil {
		return err
	}

	publish(ctx, s.Events, events.New(events.TicketUpdated, caller.UserID, id, map[string]any{
		"numeroTicket": ticket.Number,
	}))
	if ticket.StatusID != prevStatus {
		publish(ctx, s.Events, events.New(events.TicketStatusChanged, caller.UserID, id, map[string]any{
			"from": prevStatus,
			"to":   ticket.StatusID,
		}))
	}
	indexTicket(ctx, s.Indexer, ticket)
	return nil
}

// Delete soft-deletes a ticket the caller owns.
func (s *TicketService) Delete(ctx context.Context, caller access.Identity, id uint) error {
	var number string
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		t, err := authorize(ctx, tx, caller, id)
		if err != nil {
			return err
		}
		number = t.Number
		t.IsActive = false
		return tx.SaveTicket(ctx, t)
	})
	if err != nil {
		return err
	}

	publish(ctx, s.Events, events.New(events.TicketDeleted, caller.UserID, id, map[string]any{
		"numeroTicket": number,
	}))
	unindexTicket(ctx, s.Indexer, id)
	return nil
}
