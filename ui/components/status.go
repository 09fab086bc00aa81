package components

import (
	"strings"

	"github.com/Rorical/ezframe/ui/styles"
)

func RenderStatus(t styles.Theme, status string, pending bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(t, width)

	statusContent := status
	if pending {
		statusContent += strings.Repeat(".", loadingDots)
	}

	return statusStyle.Render(statusContent)
}
