package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/ezframe/internal/engine"
	"github.com/Rorical/ezframe/internal/eventbus"
	"github.com/Rorical/ezframe/internal/frames"
	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/internal/prefs"
	"github.com/Rorical/ezframe/internal/storage"
)

type serviceFixture struct {
	bus     *eventbus.EventBus
	coord   *Coordinator
	frames  *frames.List
	prefs   *prefs.Store
	service *DecodeService
	mu      sync.Mutex
	decoded []string
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{bus: eventbus.NewEventBus(), frames: frames.NewList()}

	ps, err := prefs.Load(storage.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, err)
	f.prefs = ps

	f.coord = NewCoordinator(engine.DecoderFunc(func(_ context.Context, frame string) (any, error) {
		f.mu.Lock()
		f.decoded = append(f.decoded, frame)
		f.mu.Unlock()
		if frame == "bad" {
			return nil, errors.New("bad frame")
		}
		return map[string]any{"raw": frame}, nil
	}), WithPublisher(f.bus))

	f.service = NewDecodeService(f.coord, f.frames, f.prefs, f.bus, zerolog.Nop())
	t.Cleanup(func() {
		f.service.Stop()
		f.bus.Close()
	})
	return f
}

func (f *serviceFixture) decodedFrames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.decoded...)
}

// nextState reads from ch until a decode state matching cond arrives.
func nextState(t *testing.T, ch <-chan eventbus.CoreEvent, cond func(models.DecodeSnapshot) bool) models.DecodeSnapshot {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if e, ok := ev.(eventbus.DecodeStateEvent); ok && cond(e.State) {
				return e.State
			}
		case <-timeout:
			t.Fatal("timed out waiting for decode state")
			return models.DecodeSnapshot{}
		}
	}
}

func TestServiceBroadcastsSameStateToEverySurface(t *testing.T) {
	f := newServiceFixture(t)

	decoderView := make(chan eventbus.CoreEvent, 32)
	statusBar := make(chan eventbus.CoreEvent, 32)
	require.NoError(t, f.bus.Subscribe("decoder", decoderView))
	require.NoError(t, f.bus.Subscribe("status", statusBar))

	f.service.Start()
	require.NoError(t, f.bus.SendToCore(eventbus.DecodeRequestEvent{Frame: "bad"}))

	failed := func(s models.DecodeSnapshot) bool { return s.Phase == models.PhaseFailed }
	a := nextState(t, decoderView, failed)
	b := nextState(t, statusBar, failed)

	assert.Equal(t, a, b)
	assert.Equal(t, "bad frame", a.Error)
}

func TestServiceStartPublishesInitialState(t *testing.T) {
	f := newServiceFixture(t)
	ch := make(chan eventbus.CoreEvent, 8)
	require.NoError(t, f.bus.Subscribe("ui", ch))

	f.service.Start()

	var kinds []string
	for i := 0; i < 3; i++ {
		switch (<-ch).(type) {
		case eventbus.DecodeStateEvent:
			kinds = append(kinds, "decode")
		case eventbus.FramesEvent:
			kinds = append(kinds, "frames")
		case eventbus.PreferencesEvent:
			kinds = append(kinds, "prefs")
		}
	}
	assert.Equal(t, []string{"decode", "frames", "prefs"}, kinds)
}

func TestServiceRebroadcastsPreferenceAndFrameChanges(t *testing.T) {
	f := newServiceFixture(t)
	ch := make(chan eventbus.CoreEvent, 8)
	require.NoError(t, f.bus.Subscribe("ui", ch))

	_, err := f.prefs.ToggleDarkMode()
	require.NoError(t, err)
	f.frames.SetFrames([]string{"<A1"})

	ev := (<-ch).(eventbus.PreferencesEvent)
	assert.True(t, ev.Prefs.DarkMode)
	fe := (<-ch).(eventbus.FramesEvent)
	assert.Equal(t, []string{"<A1"}, fe.Frames.Frames)
}

func TestSpecChangeDecodesSelectedFrameAgain(t *testing.T) {
	f := newServiceFixture(t)
	ch := make(chan eventbus.CoreEvent, 32)
	require.NoError(t, f.bus.Subscribe("ui", ch))
	f.service.Start()

	f.frames.SetFrames([]string{"<A1", "<B2"})
	require.NoError(t, f.frames.Select(1))

	require.NoError(t, f.bus.SendToCore(eventbus.SpecChangedEvent{Path: "/tmp/spec.json"}))
	s := nextState(t, ch, func(s models.DecodeSnapshot) bool { return s.Phase == models.PhaseSucceeded })

	assert.Equal(t, "<B2", s.Frame)
	assert.Equal(t, []string{"<B2"}, f.decodedFrames())
}

func TestSpecChangeWithNothingToDecode(t *testing.T) {
	f := newServiceFixture(t)
	f.service.Start()

	require.NoError(t, f.bus.SendToCore(eventbus.SpecChangedEvent{Path: "/tmp/spec.json"}))
	require.NoError(t, f.bus.SendToCore(eventbus.DecodeRequestEvent{Frame: "<C3"}))

	require.Eventually(t, func() bool { return len(f.decodedFrames()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"<C3"}, f.decodedFrames())
}

func TestServiceStopsWhenBusCloses(t *testing.T) {
	f := newServiceFixture(t)
	f.service.Start()
	f.bus.Close()

	select {
	case <-f.service.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not exit")
	}
}
