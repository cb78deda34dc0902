package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventBusPublishAndSubscribe(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	bus := NewInMemoryEventBus(DefaultEventBusConfig(), logger)

	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	defer bus.Stop(ctx)

	var mu sync.Mutex
	var received []Event
	handler := EventHandlerFunc{
		ID: "test-handler",
		Func: func(_ context.Context, event Event) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, event)
			return nil
		},
	}
	require.NoError(t, bus.Subscribe(EventTypeBadgeAwarded, handler))

	event := NewBadgeAwardedEvent(1, 2, "well-liked", "Well Liked", 2, time.Now())
	require.NoError(t, bus.Publish(ctx, event))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, EventTypeBadgeAwarded, received[0].GetEventType())
}

func TestEventBusStats(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	bus := NewInMemoryEventBus(DefaultEventBusConfig(), logger)

	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	defer bus.Stop(ctx)

	event := NewEngagementReceivedEvent(1, 2, 3, "like")
	require.NoError(t, bus.PublishAsync(ctx, event))

	assert.Eventually(t, func() bool {
		return bus.Stats().EventsPublished >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestBadgeAwardedEventFields(t *testing.T) {
	awardedAt := time.Now()
	event := NewBadgeAwardedEvent(7, 3, "top-10", "Top 10", 3, awardedAt)

	assert.Equal(t, EventTypeBadgeAwarded, event.GetEventType())
	assert.NotEmpty(t, event.GetEventID())
	require.NotNil(t, event.GetUserID())
	assert.Equal(t, int64(7), *event.GetUserID())
	assert.Equal(t, "top-10", event.BadgeSlug)
	assert.Equal(t, 3, event.Tier)
}
