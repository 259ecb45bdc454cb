package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Styles are the side panel styles derived from one theme.
type Styles struct {
	Canvas       lipgloss.Style
	Panel        lipgloss.Style
	Title        lipgloss.Style
	Banner       lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	Running      lipgloss.Style
	Paused       lipgloss.Style
	Recording    lipgloss.Style
	Graph        lipgloss.Style
	Hint         lipgloss.Style
	Help         lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(46),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			MarginBottom(1),
		Banner: lipgloss.NewStyle().
			Foreground(t.Warning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Warning).
			Padding(0, 1).
			Width(40),
		Label: lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value: lipgloss.NewStyle().Foreground(t.Text),
		Field: lipgloss.NewStyle().
			Foreground(t.Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Muted).
			Width(16),
		FieldFocused: lipgloss.NewStyle().
			Foreground(t.Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Primary).
			Width(16),
		Running:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Recording: lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
		Graph:     lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		Hint:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Help: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Primary).
			Padding(0, 2),
	}
}

// GradientText colours each rune of text along a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	b, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendLab(b, t).Clamped()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return result.String()
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame uint64) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%uint64(len(spinners))]
}

// ProgressBar renders a bar for a fraction in [0,1], coloured by how full it is.
func ProgressBar(percent float64, width int, t Theme) string {
	filled := int(percent * float64(width))
	filled = max(0, min(width, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := lipgloss.NewStyle().Foreground(t.Error)
	if percent > 0.5 {
		style = style.Foreground(t.Success)
	} else if percent > 0.2 {
		style = style.Foreground(t.Warning)
	}
	return style.Render(bar)
}

func Separator(width int, t Theme) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return lipgloss.NewStyle().Foreground(t.Muted).Render(left + " ◆ " + right)
}
