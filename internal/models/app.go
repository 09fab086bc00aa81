package models

import "github.com/charmbracelet/bubbles/textinput"

// View identifies a UI surface.
type View int

const (
	DecoderView View = iota
	AboutView
)

// AppModel represents the UI state. Frames, Decode and Prefs are copies of
// core state received over the event bus; only Input, View and layout are
// owned by the surface.
type AppModel struct {
	View        View
	Input       textinput.Model
	Status      string
	Frames      FrameSelection
	Decode      DecodeSnapshot
	Prefs       Preferences
	LoadingDots int
	Width       int
	Height      int
}

// NewAppModel returns the state of a surface that has not heard from the
// core yet.
func NewAppModel() AppModel {
	ti := textinput.New()
	ti.Placeholder = "paste a frame, e.g. <A1B2C3>"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Focus()

	return AppModel{
		View:   DecoderView,
		Input:  ti,
		Status: "Ready",
		Frames: FrameSelection{Selected: -1},
	}
}
