package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/ezframe/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// DecodeRequestEvent - UI asks core to decode a frame
type DecodeRequestEvent struct {
	Frame string
}

func (e DecodeRequestEvent) UIEvent() {}

// SpecChangedEvent - the spec file changed on disk, focused frame should be decoded again
type SpecChangedEvent struct {
	Path string
}

func (e SpecChangedEvent) UIEvent() {}

// DecodeStateEvent - Core pushes the shared decode state to every surface
type DecodeStateEvent struct {
	State models.DecodeSnapshot
}

func (e DecodeStateEvent) CoreEvent() {}

// PreferencesEvent - preferences changed
type PreferencesEvent struct {
	Prefs models.Preferences
}

func (e PreferencesEvent) CoreEvent() {}

// FramesEvent - frame list or selection changed
type FramesEvent struct {
	Frames models.FrameSelection
}

func (e FramesEvent) CoreEvent() {}

var (
	ErrBusClosed          = errors.New("event bus is closed")
	ErrCircuitOpen        = errors.New("circuit breaker is open")
	ErrCoreQueueFull      = errors.New("UI to Core channel is full")
	ErrSubscriberExists   = errors.New("subscriber id already exists")
	ErrSubscriberNotFound = errors.New("subscriber id not found")
)

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

// Stats counts fan-out deliveries.
type Stats struct {
	Published uint64
	Sent      map[string]uint64
	Dropped   map[string]uint64
}

type subscriber struct {
	ch      chan<- CoreEvent
	sent    uint64
	dropped uint64
}

// EventBus carries UI requests to the core on a single queue and fans core
// events out to every subscribed surface. Neither direction blocks.
type EventBus struct {
	uiToCore       chan UIEvent
	mu             sync.RWMutex
	subscribers    map[string]*subscriber
	published      uint64
	closed         bool
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, 100),
		subscribers:    make(map[string]*subscriber),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	eb.circuitBreaker.RecordFailure()

	eb.mu.RLock()
	callback := eb.errorCallback
	eb.mu.RUnlock()
	if callback != nil {
		callback(EventBusError{Operation: operation, Err: err, Timestamp: time.Now()})
	}
}

// SendToCore queues event for the core without blocking.
func (eb *EventBus) SendToCore(event UIEvent) error {
	err := eb.trySendToCore(event)
	if err != nil && !errors.Is(err, ErrBusClosed) {
		eb.reportError("SendToCore", err)
	}
	return err
}

func (eb *EventBus) trySendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrBusClosed
	}
	if eb.circuitBreaker.IsOpen() {
		return ErrCircuitOpen
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		return ErrCoreQueueFull
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

// Subscribe registers ch to receive every core event published from now on.
func (eb *EventBus) Subscribe(id string, ch chan<- CoreEvent) error {
	if ch == nil {
		return errors.New("subscriber channel cannot be nil")
	}

	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return ErrBusClosed
	}
	if _, exists := eb.subscribers[id]; exists {
		return ErrSubscriberExists
	}
	eb.subscribers[id] = &subscriber{ch: ch}
	return nil
}

func (eb *EventBus) Unsubscribe(id string) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return ErrBusClosed
	}
	if _, exists := eb.subscribers[id]; !exists {
		return ErrSubscriberNotFound
	}
	delete(eb.subscribers, id)
	return nil
}

// Publish delivers event to every subscriber whose channel has room.
// Events for full channels are dropped and counted. Publishing on a closed
// bus is a no-op.
func (eb *EventBus) Publish(event CoreEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}

	eb.published++
	for _, sub := range eb.subscribers {
		select {
		case sub.ch <- event:
			sub.sent++
		default:
			sub.dropped++
		}
	}
}

func (eb *EventBus) Stats() Stats {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	stats := Stats{
		Published: eb.published,
		Sent:      make(map[string]uint64, len(eb.subscribers)),
		Dropped:   make(map[string]uint64, len(eb.subscribers)),
	}
	for id, sub := range eb.subscribers {
		stats.Sent[id] = sub.sent
		stats.Dropped[id] = sub.dropped
	}
	return stats
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close stops the bus. Subscriber channels are owned by their subscribers
// and are left open.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	eb.subscribers = make(map[string]*subscriber)
	close(eb.uiToCore)
}
