package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the colour table the decoder surfaces are drawn with.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
}

func Light() Theme {
	return Theme{
		Name:       "light",
		Primary:    lipgloss.Color("#0057B7"),
		Success:    lipgloss.Color("#28C07B"),
		Warning:    lipgloss.Color("#FFB300"),
		Error:      lipgloss.Color("#E03B44"),
		Info:       lipgloss.Color("#5CACF4"),
		Text:       lipgloss.Color("#1f1f1f"),
		Muted:      lipgloss.Color("#6b7280"),
		Background: lipgloss.Color("#f9fafb"),
		Surface:    lipgloss.Color("#ffffff"),
	}
}

func Dark() Theme {
	return Theme{
		Name:       "dark",
		Primary:    lipgloss.Color("#0A64C8"),
		Success:    lipgloss.Color("#28C07B"),
		Warning:    lipgloss.Color("#FFB300"),
		Error:      lipgloss.Color("#E03B44"),
		Info:       lipgloss.Color("#5CACF4"),
		Text:       lipgloss.Color("#e5e7eb"),
		Muted:      lipgloss.Color("#9ca3af"),
		Background: lipgloss.Color("#111827"),
		Surface:    lipgloss.Color("#1f2937"),
	}
}

// ForMode picks the theme for the dark mode preference.
func ForMode(dark bool) Theme {
	if dark {
		return Dark()
	}
	return Light()
}

func InputStyle(t Theme, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(max(1, width-4))
}

func StatusStyle(t Theme, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Surface).
		Padding(0, 1).
		Width(width)
}

func TitleStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Padding(0, 1)
}

func PanelStyle(t Theme, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Muted).
		Foreground(t.Text).
		Padding(0, 1).
		Width(max(1, width-4))
}

func FrameStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Text).
		PaddingLeft(2)
}

func SelectedFrameStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1)
}

func KeyStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Info)
}

func ValueStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success)
}

func ErrorStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)
}

func PendingStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning)
}

func MutedStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}
