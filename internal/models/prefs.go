package models

// Preferences is a copy of the persisted user preferences.
type Preferences struct {
	AdvancedMode bool
	DarkMode     bool
	SpecFilePath string // Empty means unset
}

// FrameSelection is a copy of the frame list state.
type FrameSelection struct {
	Frames   []string
	Selected int // -1 means none
}
