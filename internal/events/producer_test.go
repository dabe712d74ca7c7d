package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope(EventOrderCreated, "backoffice-api", "corr-1", map[string]int{"quantity": 2})
	require.NoError(t, err)

	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, EventOrderCreated, env.EventType)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, "backoffice-api", env.Producer)
	assert.Equal(t, "corr-1", env.CorrelationID)
	assert.False(t, env.OccurredAt.IsZero())

	var payload map[string]int
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, 2, payload["quantity"])
}

func TestNewEnvelopeRejectsUnmarshalable(t *testing.T) {
	_, err := NewEnvelope(EventStockAdjusted, "backoffice-api", "corr-1", make(chan int))
	assert.Error(t, err)
}

func TestPublishQueuesAndDropsWhenFull(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "backoffice.events", "test", 1)

	p.Publish(EventOrderCreated, "corr-1", map[string]string{"a": "b"})
	p.Publish(EventOrderCreated, "corr-2", map[string]string{"c": "d"})

	// Inbox holds one message; the second was dropped, not blocked on.
	assert.Len(t, p.inbox, 1)
}

// Publishing after shutdown must drop the event, never panic.
func TestPublishAfterShutdown(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "backoffice.events", "test", 4)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()
	p.WaitClosed()

	assert.NotPanics(t, func() {
		p.Publish(EventCreditDeducted, "corr-1", map[string]string{"a": "b"})
	})
	assert.Empty(t, p.inbox)
}
