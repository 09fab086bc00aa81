package components

import (
	"strings"

	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/ui/styles"
)

// RenderAbout draws the about view with the current preferences.
func RenderAbout(t styles.Theme, prefs models.Preferences, width int) string {
	spec := prefs.SpecFilePath
	if spec == "" {
		spec = "(not set)"
	}

	lines := []string{
		"ezframe decodes hex frames with an external decode command and",
		"shows the result to every open view.",
		"",
		"Spec file:     " + spec,
		"Advanced mode: " + onOff(prefs.AdvancedMode),
		"Theme:         " + t.Name,
		"",
		"Set the spec file with `ezframe prefs spec-path`.",
	}

	return styles.TitleStyle(t).Render("About ezframe") + "\n" +
		styles.PanelStyle(t, width).Render(strings.Join(lines, "\n"))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
