package update

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/ezframe/internal/eventbus"
	"github.com/Rorical/ezframe/internal/frames"
	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/internal/prefs"
	"github.com/Rorical/ezframe/internal/storage"
)

type recordingSender struct {
	events []eventbus.UIEvent
	err    error
}

func (r *recordingSender) SendToCore(event eventbus.UIEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *recordingSender) frames() []string {
	var out []string
	for _, e := range r.events {
		if d, ok := e.(eventbus.DecodeRequestEvent); ok {
			out = append(out, d.Frame)
		}
	}
	return out
}

func newDeps(t *testing.T) (Deps, *recordingSender) {
	t.Helper()
	ps, err := prefs.Load(storage.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, err)
	sender := &recordingSender{}
	return Deps{
		Bus:    sender,
		Frames: frames.NewList(),
		Prefs:  ps,
		Keys:   DefaultKeyMap(),
	}, sender
}

func press(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestEnterAppendsFramesAndDecodesLast(t *testing.T) {
	deps, sender := newDeps(t)
	m := models.NewAppModel()

	m.Input.SetValue("  <A1>   <B2> ")
	HandleKeyMsg(&m, press(tea.KeyEnter), deps)

	assert.Equal(t, []string{"<A1>", "<B2>"}, deps.Frames.Frames())
	assert.Equal(t, 1, deps.Frames.Selected())
	assert.Equal(t, []string{"<B2>"}, sender.frames())
	assert.Empty(t, m.Input.Value())

	m.Input.SetValue("<C3>")
	HandleKeyMsg(&m, press(tea.KeyEnter), deps)
	assert.Equal(t, []string{"<A1>", "<B2>", "<C3>"}, deps.Frames.Frames())
	assert.Equal(t, 2, deps.Frames.Selected())
}

func TestEnterWithEmptyInputDecodesSelected(t *testing.T) {
	deps, sender := newDeps(t)
	m := models.NewAppModel()

	HandleKeyMsg(&m, press(tea.KeyEnter), deps)
	assert.Equal(t, "No frame selected", m.Status)
	assert.Empty(t, sender.events)

	deps.Frames.SetFrames([]string{"<A1>", "<B2>"})
	require.NoError(t, deps.Frames.Select(0))
	HandleKeyMsg(&m, press(tea.KeyEnter), deps)
	assert.Equal(t, []string{"<A1>"}, sender.frames())
}

func TestTypedRunesReachInput(t *testing.T) {
	deps, _ := newDeps(t)
	m := models.NewAppModel()

	HandleKeyMsg(&m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("<FF>")}, deps)
	assert.Equal(t, "<FF>", m.Input.Value())
}

func TestArrowKeysMoveSelectionAndDecode(t *testing.T) {
	deps, sender := newDeps(t)
	m := models.NewAppModel()
	deps.Frames.SetFrames([]string{"<A1>", "<B2>", "<C3>"})

	HandleKeyMsg(&m, press(tea.KeyDown), deps)
	assert.Equal(t, 0, deps.Frames.Selected())
	HandleKeyMsg(&m, press(tea.KeyDown), deps)
	assert.Equal(t, 1, deps.Frames.Selected())
	HandleKeyMsg(&m, press(tea.KeyUp), deps)
	HandleKeyMsg(&m, press(tea.KeyUp), deps)
	assert.Equal(t, 0, deps.Frames.Selected())

	assert.Equal(t, []string{"<A1>", "<B2>", "<A1>"}, sender.frames())
}

func TestUpWithoutSelectionFocusesLast(t *testing.T) {
	deps, _ := newDeps(t)
	m := models.NewAppModel()
	deps.Frames.SetFrames([]string{"<A1>", "<B2>"})

	HandleKeyMsg(&m, press(tea.KeyUp), deps)
	assert.Equal(t, 1, deps.Frames.Selected())
}

func TestClearAndToggles(t *testing.T) {
	deps, _ := newDeps(t)
	m := models.NewAppModel()
	deps.Frames.SetFrames([]string{"<A1>"})

	HandleKeyMsg(&m, press(tea.KeyCtrlL), deps)
	assert.Zero(t, deps.Frames.Len())
	assert.Equal(t, frames.NoSelection, deps.Frames.Selected())

	HandleKeyMsg(&m, press(tea.KeyCtrlA), deps)
	assert.True(t, deps.Prefs.AdvancedMode())
	HandleKeyMsg(&m, press(tea.KeyCtrlT), deps)
	assert.True(t, deps.Prefs.DarkMode())
}

func TestSendFailureShownInStatus(t *testing.T) {
	deps, sender := newDeps(t)
	sender.err = errors.New("queue full")
	m := models.NewAppModel()

	m.Input.SetValue("<A1>")
	HandleKeyMsg(&m, press(tea.KeyEnter), deps)
	assert.Equal(t, "Error sending decode request: queue full", m.Status)
}

func TestTabSwitchesViewAndAboutIgnoresActions(t *testing.T) {
	deps, sender := newDeps(t)
	m := models.NewAppModel()
	deps.Frames.SetFrames([]string{"<A1>"})

	HandleKeyMsg(&m, press(tea.KeyTab), deps)
	assert.Equal(t, models.AboutView, m.View)

	HandleKeyMsg(&m, press(tea.KeyDown), deps)
	assert.Empty(t, sender.events)

	HandleKeyMsg(&m, press(tea.KeyTab), deps)
	assert.Equal(t, models.DecoderView, m.View)
}

func TestCtrlCQuits(t *testing.T) {
	deps, _ := newDeps(t)
	m := models.NewAppModel()

	cmd := HandleKeyMsg(&m, press(tea.KeyCtrlC), deps)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCoreEventsUpdateModel(t *testing.T) {
	m := models.NewAppModel()

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.DecodeStateEvent{State: models.DecodeSnapshot{
		Phase: models.PhasePending, InFlight: 1, Version: 1,
	}}})
	assert.Equal(t, "Decoding", m.Status)

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.DecodeStateEvent{State: models.DecodeSnapshot{
		Phase: models.PhaseSucceeded, Result: map[string]any{"a": 1.0}, Frame: "<A1>", Version: 3,
	}}})
	assert.Equal(t, "Decoded <A1>", m.Status)

	// An older snapshot arriving late is ignored.
	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.DecodeStateEvent{State: models.DecodeSnapshot{
		Phase: models.PhasePending, InFlight: 1, Version: 2,
	}}})
	assert.Equal(t, uint64(3), m.Decode.Version)
	assert.True(t, m.Decode.HasResult())

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.PreferencesEvent{Prefs: models.Preferences{DarkMode: true}}})
	assert.True(t, m.Prefs.DarkMode)

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.FramesEvent{Frames: models.FrameSelection{Frames: []string{"<A1>"}, Selected: 0}}})
	assert.Equal(t, 0, m.Frames.Selected)
}

func TestTickAnimatesOnlyWhilePending(t *testing.T) {
	m := models.NewAppModel()

	require.NotNil(t, HandleTickMsg(&m))
	assert.Zero(t, m.LoadingDots)

	m.Decode = models.DecodeSnapshot{Phase: models.PhasePending, InFlight: 1}
	HandleTickMsg(&m)
	HandleTickMsg(&m)
	assert.Equal(t, 2, m.LoadingDots)
}

func TestWindowSize(t *testing.T) {
	m := models.NewAppModel()
	HandleUpdate(&m, tea.WindowSizeMsg{Width: 100, Height: 40}, Deps{})
	assert.Equal(t, 100, m.Width)
	assert.Equal(t, 40, m.Height)
	assert.Equal(t, 92, m.Input.Width)
}
