package console

import "github.com/charmbracelet/lipgloss"

var (
	colorIris  = lipgloss.Color("#5D3FD3")
	colorSlate = lipgloss.Color("#667085")
)

type styles struct {
	title   lipgloss.Style
	done    lipgloss.Style
	failed  lipgloss.Style
	cached  lipgloss.Style
	warn    lipgloss.Style
	debug   lipgloss.Style
	success lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Foreground(colorIris).
			Bold(true),
		done: r.NewStyle().
			Foreground(lipgloss.Color("42")), // Green
		failed: r.NewStyle().
			Foreground(lipgloss.Color("196")), // Red
		cached: r.NewStyle().
			Foreground(colorSlate).
			Faint(true),
		warn: r.NewStyle().
			Foreground(lipgloss.Color("214")),
		debug: r.NewStyle().
			Foreground(colorSlate),
		success: r.NewStyle().
			Foreground(lipgloss.Color("42")),
	}
}
