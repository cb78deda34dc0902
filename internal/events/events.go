package events

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ===============================
// EVENT INTERFACE
// ===============================

// Event represents a domain event
type Event interface {
	GetEventID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetUserID() *int64
}

// BaseEvent provides common event functionality
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	UserID    *int64    `json:"user_id,omitempty"`
}

// GetEventID returns the event ID
func (e *BaseEvent) GetEventID() string {
	return e.EventID
}

// GetEventType returns the event type
func (e *BaseEvent) GetEventType() string {
	return e.EventType
}

// GetTimestamp returns the event timestamp
func (e *BaseEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

// GetUserID returns the user ID associated with the event
func (e *BaseEvent) GetUserID() *int64 {
	return e.UserID
}

// GenerateEventID generates a unique event identifier
func GenerateEventID() string {
	return fmt.Sprintf("evt_%d_%d", time.Now().UnixNano(), time.Now().Nanosecond())
}

// ===============================
// EVENT BUS
// ===============================

// EventHandler represents an event handler
type EventHandler interface {
	Handle(ctx context.Context, event Event) error
	GetHandlerID() string
}

// EventHandlerFunc is a function type that implements EventHandler
type EventHandlerFunc struct {
	ID   string
	Func func(ctx context.Context, event Event) error
}

// Handle implements EventHandler
func (f EventHandlerFunc) Handle(ctx context.Context, event Event) error {
	return f.Func(ctx, event)
}

// GetHandlerID implements EventHandler
func (f EventHandlerFunc) GetHandlerID() string {
	return f.ID
}

// EventBus defines the event publishing and subscription interface
type EventBus interface {
	Publish(ctx context.Context, event Event) error
	PublishAsync(ctx context.Context, event Event) error
	Subscribe(eventType string, handler EventHandler) error
	Unsubscribe(eventType string, handler EventHandler) error

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health() error
	Stats() *EventBusStats
}

// EventBusStats represents event bus statistics
type EventBusStats struct {
	EventsPublished int64         `json:"events_published"`
	EventsProcessed int64         `json:"events_processed"`
	EventsFailed    int64         `json:"events_failed"`
	HandlersCount   int           `json:"handlers_count"`
	QueueDepth      int           `json:"queue_depth"`
	Uptime          time.Duration `json:"uptime"`
}

// EventBusConfig holds configuration for the event bus
type EventBusConfig struct {
	BufferSize  int `json:"buffer_size"`
	WorkerCount int `json:"worker_count"`
}

// DefaultEventBusConfig returns default configuration
func DefaultEventBusConfig() *EventBusConfig {
	return &EventBusConfig{
		BufferSize:  1000,
		WorkerCount: 5,
	}
}

// ===============================
// IN-MEMORY EVENT BUS
// ===============================

// inMemoryEventBus implements EventBus using in-memory channels
type inMemoryEventBus struct {
	mu         sync.RWMutex
	handlers   map[string][]EventHandler
	eventQueue chan eventMessage
	logger     *zap.Logger
	stats      EventBusStats
	startTime  time.Time
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	bufferSize int
	workers    int
}

type eventMessage struct {
	ctx   context.Context
	event Event
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(config *EventBusConfig, logger *zap.Logger) EventBus {
	if config == nil {
		config = DefaultEventBusConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &inMemoryEventBus{
		handlers:   make(map[string][]EventHandler),
		eventQueue: make(chan eventMessage, config.BufferSize),
		logger:     logger,
		startTime:  time.Now(),
		ctx:        ctx,
		cancel:     cancel,
		bufferSize: config.BufferSize,
		workers:    config.WorkerCount,
	}
}

// Publish publishes an event synchronously
func (b *inMemoryEventBus) Publish(ctx context.Context, event Event) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if err := b.processEvent(ctx, event); err != nil {
		b.logger.Error("Failed to process event",
			zap.String("event_id", event.GetEventID()),
			zap.String("event_type", event.GetEventType()),
			zap.Error(err),
		)
		b.addFailed()
		return err
	}

	b.addPublished()
	return nil
}

// PublishAsync enqueues an event for background processing
func (b *inMemoryEventBus) PublishAsync(ctx context.Context, event Event) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	select {
	case b.eventQueue <- eventMessage{ctx: ctx, event: event}:
		b.addPublished()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("event queue is full")
	}
}

// Subscribe subscribes to events of a specific type
func (b *inMemoryEventBus) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.stats.HandlersCount++

	b.logger.Info("Handler subscribed",
		zap.String("event_type", eventType),
		zap.String("handler_id", handler.GetHandlerID()),
	)

	return nil
}

// Unsubscribe removes a handler for a specific event type
func (b *inMemoryEventBus) Unsubscribe(eventType string, handler EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.GetHandlerID() == handler.GetHandlerID() {
			b.handlers[eventType] = append(handlers[:i], handlers[i+1:]...)
			b.stats.HandlersCount--
			return nil
		}
	}

	return fmt.Errorf("handler not found")
}

// Start starts the event bus workers
func (b *inMemoryEventBus) Start(ctx context.Context) error {
	b.logger.Info("Starting event bus", zap.Int("worker_count", b.workers))

	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.worker(i)
	}

	return nil
}

// Stop stops the event bus, waiting for workers to drain
func (b *inMemoryEventBus) Stop(ctx context.Context) error {
	b.cancel()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("Event bus stopped")
		return nil
	case <-ctx.Done():
		b.logger.Warn("Event bus stop timeout")
		return ctx.Err()
	}
}

// Health checks the health of the event bus
func (b *inMemoryEventBus) Health() error {
	select {
	case <-b.ctx.Done():
		return fmt.Errorf("event bus is stopped")
	default:
	}

	queueDepth := len(b.eventQueue)
	if queueDepth > b.bufferSize*80/100 {
		return fmt.Errorf("event queue is %d%% full", queueDepth*100/b.bufferSize)
	}

	return nil
}

// Stats returns event bus statistics
func (b *inMemoryEventBus) Stats() *EventBusStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := b.stats
	stats.QueueDepth = len(b.eventQueue)
	stats.Uptime = time.Since(b.startTime)
	return &stats
}

func (b *inMemoryEventBus) worker(workerID int) {
	defer b.wg.Done()

	for {
		select {
		case msg := <-b.eventQueue:
			if err := b.processEvent(msg.ctx, msg.event); err != nil {
				b.logger.Error("Failed to process event",
					zap.Int("worker_id", workerID),
					zap.String("event_id", msg.event.GetEventID()),
					zap.String("event_type", msg.event.GetEventType()),
					zap.Error(err),
				)
				b.addFailed()
			} else {
				b.addProcessed()
			}
		case <-b.ctx.Done():
			return
		}
	}
}

func (b *inMemoryEventBus) processEvent(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.handlers[event.GetEventType()]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("No handlers found for event",
			zap.String("event_type", event.GetEventType()))
		return nil
	}

	var failures []string
	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", handler.GetHandlerID(), err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("handler failures: %s", strings.Join(failures, "; "))
	}
	return nil
}

func (b *inMemoryEventBus) addPublished() {
	b.mu.Lock()
	b.stats.EventsPublished++
	b.mu.Unlock()
}

func (b *inMemoryEventBus) addProcessed() {
	b.mu.Lock()
	b.stats.EventsProcessed++
	b.mu.Unlock()
}

func (b *inMemoryEventBus) addFailed() {
	b.mu.Lock()
	b.stats.EventsFailed++
	b.mu.Unlock()
}
