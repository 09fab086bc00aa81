package dispatcher

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/ezframe/internal/eventbus"
	"github.com/Rorical/ezframe/internal/update"
)

const subscriberBuffer = 64

// EventDispatcher connects one UI surface to the core: it owns the surface's
// subscription on the bus and turns core events into Bubble Tea messages.
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	id       string
	events   chan eventbus.CoreEvent
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewEventDispatcher(eventBus *eventbus.EventBus, id string) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		id:       id,
		events:   make(chan eventbus.CoreEvent, subscriberBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start subscribes the surface. It must run before the core publishes its
// initial state so nothing is missed.
func (ed *EventDispatcher) Start() error {
	return ed.eventBus.Subscribe(ed.id, ed.events)
}

// ListenForCoreEvents waits for the next core event. Returns nil once the
// dispatcher is stopped so the program stops re-arming it.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ed.ctx.Done():
			return nil
		case event := <-ed.events:
			return update.CoreEventMsg{Event: event}
		}
	}
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
	_ = ed.eventBus.Unsubscribe(ed.id)
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}
