package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/ezframe/internal/eventbus"
	"github.com/Rorical/ezframe/internal/frames"
	"github.com/Rorical/ezframe/internal/models"
)

// HandleKeyMsg handles keyboard input. Keys not bound to an action go to
// the input line.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, deps Deps) tea.Cmd {
	keys := deps.Keys
	switch {
	case key.Matches(keyMsg, keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, keys.SwitchView):
		if appModel.View == models.DecoderView {
			appModel.View = models.AboutView
		} else {
			appModel.View = models.DecoderView
		}
		return nil
	}

	if appModel.View != models.DecoderView {
		return nil
	}

	switch {
	case key.Matches(keyMsg, keys.Decode):
		handleDecode(appModel, deps)
		return nil
	case key.Matches(keyMsg, keys.Up):
		moveSelection(appModel, deps, -1)
		return nil
	case key.Matches(keyMsg, keys.Down):
		moveSelection(appModel, deps, 1)
		return nil
	case key.Matches(keyMsg, keys.Clear):
		deps.Frames.Clear()
		appModel.Status = "Frames cleared"
		return nil
	case key.Matches(keyMsg, keys.ToggleAdvanced):
		if _, err := deps.Prefs.ToggleAdvancedMode(); err != nil {
			appModel.Status = "Error saving preference: " + err.Error()
		}
		return nil
	case key.Matches(keyMsg, keys.ToggleTheme):
		if _, err := deps.Prefs.ToggleDarkMode(); err != nil {
			appModel.Status = "Error saving preference: " + err.Error()
		}
		return nil
	}

	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(keyMsg)
	return cmd
}

// handleDecode appends the frames typed on the input line, focuses the last
// one and asks the core to decode it. The input line cannot hold newlines,
// so pasted lists arrive space separated and every token is a frame. With
// an empty input line the focused frame is decoded again.
func handleDecode(appModel *models.AppModel, deps Deps) {
	text := strings.TrimSpace(appModel.Input.Value())
	if text == "" {
		frame, ok := deps.Frames.SelectedFrame()
		if !ok {
			appModel.Status = "No frame selected"
			return
		}
		requestDecode(appModel, deps, frame)
		return
	}

	parsed := strings.Fields(text)
	list := append(deps.Frames.Frames(), parsed...)
	deps.Frames.SetFrames(list)
	if err := deps.Frames.Select(len(list) - 1); err != nil {
		appModel.Status = "Error: " + err.Error()
		return
	}
	appModel.Input.Reset()
	requestDecode(appModel, deps, parsed[len(parsed)-1])
}

// moveSelection focuses the neighbouring frame and decodes it.
func moveSelection(appModel *models.AppModel, deps Deps, delta int) {
	n := deps.Frames.Len()
	if n == 0 {
		return
	}
	idx := deps.Frames.Selected() + delta
	if deps.Frames.Selected() == frames.NoSelection {
		idx = 0
		if delta < 0 {
			idx = n - 1
		}
	}
	if idx < 0 || idx >= n {
		return
	}
	if err := deps.Frames.Select(idx); err != nil {
		appModel.Status = "Error: " + err.Error()
		return
	}
	if frame, ok := deps.Frames.SelectedFrame(); ok {
		requestDecode(appModel, deps, frame)
	}
}

func requestDecode(appModel *models.AppModel, deps Deps, frame string) {
	if err := deps.Bus.SendToCore(eventbus.DecodeRequestEvent{Frame: frame}); err != nil {
		appModel.Status = "Error sending decode request: " + err.Error()
	}
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent copies core state into the surface.
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.DecodeStateEvent:
		// Snapshots may be reordered by a slow surface; keep the newest.
		if event.State.Version < appModel.Decode.Version {
			return nil
		}
		appModel.Decode = event.State
		appModel.Status = decodeStatus(event.State)
	case eventbus.PreferencesEvent:
		appModel.Prefs = event.Prefs
	case eventbus.FramesEvent:
		appModel.Frames = event.Frames
	}
	return nil
}

func decodeStatus(s models.DecodeSnapshot) string {
	switch {
	case s.IsPending():
		return "Decoding"
	case s.HasError():
		return "Error"
	case s.HasResult():
		return fmt.Sprintf("Decoded %s", s.Frame)
	default:
		return "Ready"
	}
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	appModel.Input.Width = max(10, sizeMsg.Width-8)
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Decode.IsPending() {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	} else {
		appModel.LoadingDots = 0
	}
	return TickCmd()
}
