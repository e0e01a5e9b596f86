package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/search"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
)

// publish never fails the caller; delivery problems are only logged.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, strconv.FormatUint(uint64(ev.EntityID), 10), ev); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "type", ev.Type, "entity_id", ev.EntityID, "error", err)
	}
}

func indexTicket(ctx context.Context, x search.TicketIndexer, t models.Ticket) {
	if x == nil {
		return
	}
	if err := x.IndexTicket(ctx, t); err != nil {
		logging.FromContext(ctx).Error("ticket_index_error", "ticket_id", t.ID, "error", err)
	}
}

func unindexTicket(ctx context.Context, x search.TicketIndexer, id uint) {
	if x == nil {
		return
	}
	if err := x.DeleteTicket(ctx, id); err != nil {
		logging.FromContext(ctx).Error("ticket_unindex_error", "ticket_id", id, "error", err)
	}
}
