package events

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FillsEnvelope(t *testing.T) {
	ev := New(TicketCreated, 3, 10, map[string]any{"numeroTicket": "ATD000001"})

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, TicketCreated, ev.Type)
	assert.Equal(t, uint(3), ev.ActorID)
	assert.Equal(t, uint(10), ev.EntityID)
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestRecorder_KeepsOrder(t *testing.T) {
	var r Recorder
	ctx := context.Background()

	require.NoError(t, r.Publish(ctx, "1", New(TicketCreated, 1, 1, nil)))
	require.NoError(t, r.Publish(ctx, "1", New(TicketDeleted, 1, 1, nil)))

	assert.Equal(t, []string{TicketCreated, TicketDeleted}, r.Types())
}

func TestNop_NeverFails(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), "k", New(UserLocked, 0, 1, nil)))
	assert.NoError(t, p.Close())
}

func TestKafkaPublisher_WriterDoesNotBlockCallers(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "helpdesk_events", nil)
	t.Cleanup(func() { _ = p.Close() })

	assert.True(t, p.writer.Async)
	assert.LessOrEqual(t, p.writer.BatchTimeout, 10*time.Millisecond)
	assert.NotNil(t, p.writer.Completion)
}

func TestKafkaPublisher_CompletionLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	done := completion(logger, "helpdesk_events")

	done([]kafka.Message{{Key: []byte("7")}}, nil)
	assert.Zero(t, buf.Len())

	done([]kafka.Message{{Key: []byte("7")}}, errors.New("broker down"))
	assert.Contains(t, buf.String(), "event_delivery_error")
	assert.Contains(t, buf.String(), "broker down")
}
