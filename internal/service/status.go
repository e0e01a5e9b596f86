package service

import (
	"context"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/repo"
)

type StatusService struct {
	Repo *repo.GormRepo
}

func (s *StatusService) List(ctx context.Context) ([]models.TicketStatus, error) {
	out, err := s.Repo.ListStatuses(ctx)
	if out == nil {
		out = []models.TicketStatus{}
	}
	return out, err
}
