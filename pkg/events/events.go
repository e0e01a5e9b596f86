package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TicketCreated         = "ticket_created"
	TicketUpdated         = "ticket_updated"
	TicketStatusChanged   = "ticket_status_changed"
	TicketDeleted         = "ticket_deleted"
	CustomerStatusChanged = "customer_status_changed"
	UserDeactivated       = "user_deactivated"
	UserLocked            = "user_locked"
)

type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	ActorID    uint           `json:"actorId,omitempty"`
	EntityID   uint           `json:"entityId"`
	Data       map[string]any `json:"data,omitempty"`
}

func New(eventType string, actorID, entityID uint, data map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		ActorID:    actorID,
		EntityID:   entityID,
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, key string, ev Event) error
	Close() error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, Event) error { return nil }
func (Nop) Close() error                                 { return nil }
