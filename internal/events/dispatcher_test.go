package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var seen []Event
	d.Subscribe(EventPostCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})
	d.Subscribe(EventLikeToggled, func(_ context.Context, e Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventPostCreated, ActorID: 42})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, 42, seen[0].ActorID)
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	var failures int
	d := NewInMemoryDispatcher(func(Event, error) { failures++ })

	var delivered bool
	d.Subscribe(EventCommentAdded, func(context.Context, Event) error {
		return errors.New("handler boom")
	})
	d.Subscribe(EventCommentAdded, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventCommentAdded})
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, 1, failures)
}
