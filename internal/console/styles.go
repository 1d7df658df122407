package console

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains styling for the interface
type Styles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Info    lipgloss.Style
	Digest  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Move    lipgloss.Style
	Border  lipgloss.Style
	Cell    lipgloss.Style
	Header  lipgloss.Style
}

// NewStyles builds styles bound to renderer. With noColor the renderer is
// forced to plain ASCII output.
func NewStyles(renderer *lipgloss.Renderer, noColor bool) Styles {
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Title: renderer.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Prompt:  renderer.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:    renderer.NewStyle().Foreground(lipgloss.Color("#626262")),
		Digest:  renderer.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Success: renderer.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:   renderer.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning: renderer.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Move:    renderer.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Bold(true),
		Border:  renderer.NewStyle().Foreground(lipgloss.Color("#626262")),
		Cell:    renderer.NewStyle().Padding(0, 1),
		Header:  renderer.NewStyle().Padding(0, 1).Bold(true),
	}
}
