package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHub_PublishDeliversToAllSubscribers(t *testing.T) {
	hub := NewHub()

	_, ch1 := hub.Subscribe()
	_, ch2 := hub.Subscribe()
	require.Equal(t, 2, hub.SubscriberCount())

	hub.Publish(TaskCreated, map[string]any{"id": 1})

	ev1 := <-ch1
	ev2 := <-ch2
	require.Equal(t, TaskCreated, ev1.Name)
	require.Equal(t, TaskCreated, ev2.Name)
}

func TestHub_PublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	hub := NewHub()

	_, ch := hub.Subscribe()

	// Fill the subscriber buffer and then some; the overflow is dropped
	// rather than blocking the publisher.
	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(TaskUpdated, i)
	}

	require.Len(t, ch, subscriberBuffer)
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()

	id, ch := hub.Subscribe()
	hub.Unsubscribe(id)

	_, open := <-ch
	require.False(t, open)
	require.Equal(t, 0, hub.SubscriberCount())

	// Unsubscribing twice is a no-op.
	hub.Unsubscribe(id)
}

func TestHub_PublishWithNoSubscribers(t *testing.T) {
	hub := NewHub()
	hub.Publish(TaskCreated, nil)
}
