package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/ezframe/internal/eventbus"
	"github.com/Rorical/ezframe/internal/frames"
	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/internal/prefs"
)

// CoreSender queues UI requests for the core.
type CoreSender interface {
	SendToCore(event eventbus.UIEvent) error
}

// Deps are the core-side objects a surface may act on. Changes made through
// them come back to every surface as core events.
type Deps struct {
	Bus    CoreSender
	Frames *frames.List
	Prefs  *prefs.Store
	Keys   KeyMap
}

func HandleUpdate(appModel *models.AppModel, msg tea.Msg, deps Deps) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(appModel, msg, deps)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel)
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	}
	return nil
}
