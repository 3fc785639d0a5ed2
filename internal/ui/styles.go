package ui

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles used by the views.
type styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Label      lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Link       lipgloss.Style
	Selected   lipgloss.Style
	Online     lipgloss.Style
	Offline    lipgloss.Style
	Alert      lipgloss.Style
	AlertTitle lipgloss.Style
	Help       lipgloss.Style
}

func defaultStyles() styles {
	accent := lipgloss.Color("#BD93F9")
	muted := lipgloss.Color("#6272A4")
	text := lipgloss.Color("#F8F8F2")
	danger := lipgloss.Color("#FF5555")

	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(text),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD")),
		Text: lipgloss.NewStyle().
			Foreground(text),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Link: lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("#50FA7B")),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#282A36")).
			Background(accent),
		Online: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B")),
		Offline: lipgloss.NewStyle().
			Foreground(danger),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 2),
		AlertTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(danger),
		Help: lipgloss.NewStyle().
			Foreground(muted),
	}
}
