package core

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Rorical/ezframe/internal/eventbus"
	"github.com/Rorical/ezframe/internal/frames"
	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/internal/prefs"
)

// DecodeService drains UI events from the bus into the coordinator and
// rebroadcasts preference and frame list changes to every surface.
type DecodeService struct {
	coordinator *Coordinator
	frames      *frames.List
	prefs       *prefs.Store
	eventBus    *eventbus.EventBus
	logger      zerolog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	done        chan struct{}
}

func NewDecodeService(c *Coordinator, fl *frames.List, ps *prefs.Store, eb *eventbus.EventBus, logger zerolog.Logger) *DecodeService {
	ctx, cancel := context.WithCancel(context.Background())
	s := &DecodeService{
		coordinator: c,
		frames:      fl,
		prefs:       ps,
		eventBus:    eb,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	fl.OnChange(func(sel models.FrameSelection) {
		eb.Publish(eventbus.FramesEvent{Frames: sel})
	})
	ps.OnChange(func(p models.Preferences) {
		eb.Publish(eventbus.PreferencesEvent{Prefs: p})
	})

	return s
}

// Start pushes the initial state to every surface and runs the event loop
// in a goroutine.
func (s *DecodeService) Start() {
	s.eventBus.Publish(eventbus.DecodeStateEvent{State: s.coordinator.Snapshot()})
	s.eventBus.Publish(eventbus.FramesEvent{Frames: s.frames.Snapshot()})
	s.eventBus.Publish(eventbus.PreferencesEvent{Prefs: s.prefs.Snapshot()})
	go s.eventLoop()
}

func (s *DecodeService) Stop() {
	s.cancel()
	s.coordinator.Stop()
}

// Done is closed when the event loop has exited.
func (s *DecodeService) Done() <-chan struct{} {
	return s.done
}

func (s *DecodeService) eventLoop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *DecodeService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.DecodeRequestEvent:
		s.coordinator.Submit(e.Frame)
	case eventbus.SpecChangedEvent:
		s.redecode(e.Path)
	}
}

// redecode runs the focused frame again, or the frame of the last attempt
// when nothing is focused.
func (s *DecodeService) redecode(path string) {
	frame, ok := s.frames.SelectedFrame()
	if !ok {
		frame = s.coordinator.Snapshot().Frame
	}
	if frame == "" {
		s.logger.Debug().Str("spec", path).Msg("spec changed, nothing to decode")
		return
	}
	s.logger.Info().Str("spec", path).Str("frame", frame).Msg("spec changed, decoding again")
	s.coordinator.Submit(frame)
}
