package components

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Rorical/ezframe/ui/styles"
)

func RenderInput(t styles.Theme, input textinput.Model, width int) string {
	inputStyle := styles.InputStyle(t, width)
	return inputStyle.Render(input.View())
}
