package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var seen []Event
	dispatcher.Subscribe(EventCarCreated, func(_ context.Context, event Event) error {
		seen = append(seen, event)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventCarCreated,
		Timestamp: time.Now(),
		Payload:   CarPayload{CarID: 1, BrandID: 2, Brand: "Volvo"},
	}
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	require.Len(t, seen, 1)
	assert.Equal(t, "evt-1", seen[0].ID)
	assert.Equal(t, CarPayload{CarID: 1, BrandID: 2, Brand: "Volvo"}, seen[0].Payload)
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventBrandDeleted, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventCarCreated}))
	assert.Zero(t, calls)
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	handlerErr := errors.New("handler failed")

	calls := 0
	dispatcher.Subscribe(EventCarDeleted, func(context.Context, Event) error {
		return handlerErr
	})
	dispatcher.Subscribe(EventCarDeleted, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventCarDeleted})
	assert.ErrorIs(t, err, handlerErr)
	assert.Equal(t, 1, calls, "later handlers still run")
}
