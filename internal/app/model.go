package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/ezframe/internal/dispatcher"
	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/internal/update"
	"github.com/Rorical/ezframe/ui/components"
	"github.com/Rorical/ezframe/ui/styles"
)

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	deps       update.Deps
	help       help.Model
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	return h
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
		m.appModel.Input.Focus(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.help.Width = size.Width
	}

	cmd := update.HandleUpdate(&m.appModel, msg, m.deps)
	return m, cmd
}

func (m *AppModel) View() string {
	theme := styles.ForMode(m.appModel.Prefs.DarkMode)
	width := m.appModel.Width
	if width == 0 {
		width = 80
	}

	var b strings.Builder
	if m.appModel.View == models.AboutView {
		b.WriteString(components.RenderAbout(theme, m.appModel.Prefs, width))
		b.WriteString("\n")
	} else {
		b.WriteString(components.RenderFrames(theme, m.appModel.Frames))
		b.WriteString("\n")
		b.WriteString(components.RenderResult(theme, m.appModel.Decode, m.appModel.Prefs.AdvancedMode, m.appModel.LoadingDots, width))
		b.WriteString("\n")
		b.WriteString(components.RenderInput(theme, m.appModel.Input, width))
		b.WriteString("\n")
	}
	b.WriteString(components.RenderStatus(theme, m.appModel.Status, m.appModel.Decode.IsPending(), m.appModel.LoadingDots, width))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.deps.Keys.ShortHelp()))

	return b.String()
}
