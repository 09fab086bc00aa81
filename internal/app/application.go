package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/ezframe/internal/dispatcher"
	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/internal/update"
)

const surfaceID = "tui"

// Application manages the complete application lifecycle
type Application struct {
	runtime    *Runtime
	dispatcher *dispatcher.EventDispatcher
	model      *AppModel
}

func NewApplication(rt *Runtime) *Application {
	disp := dispatcher.NewEventDispatcher(rt.EventBus, surfaceID)

	model := &AppModel{
		appModel:   models.NewAppModel(),
		dispatcher: disp,
		deps: update.Deps{
			Bus:    rt.EventBus,
			Frames: rt.Frames,
			Prefs:  rt.Prefs,
			Keys:   update.DefaultKeyMap(),
		},
	}
	model.help = newHelp()

	return &Application{
		runtime:    rt,
		dispatcher: disp,
		model:      model,
	}
}

// Start subscribes the terminal surface, starts the core and runs the UI
// until the user quits.
func (app *Application) Start() error {
	if err := app.dispatcher.Start(); err != nil {
		return err
	}
	if err := app.runtime.Start(); err != nil {
		return err
	}

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() error {
	app.dispatcher.Stop()
	return app.runtime.Close()
}
