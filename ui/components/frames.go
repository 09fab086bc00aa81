package components

import (
	"fmt"
	"strings"

	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/ui/styles"
)

// RenderFrames draws the frame list with the focused frame highlighted.
func RenderFrames(t styles.Theme, sel models.FrameSelection) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle(t).Render(fmt.Sprintf("Frames (%d)", len(sel.Frames))))
	b.WriteString("\n")

	if len(sel.Frames) == 0 {
		b.WriteString(styles.MutedStyle(t).PaddingLeft(2).Render("No frames yet"))
		b.WriteString("\n")
		return b.String()
	}

	frameStyle := styles.FrameStyle(t)
	selectedStyle := styles.SelectedFrameStyle(t)
	for i, frame := range sel.Frames {
		line := fmt.Sprintf("%2d  %s", i+1, frame)
		if i == sel.Selected {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(frameStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
