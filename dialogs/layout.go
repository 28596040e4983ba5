package dialogs

import "github.com/charmbracelet/lipgloss"

var backdrop = lipgloss.Color("236")

// Center places s in the middle of a width x height block on the dialog
// backdrop.
func Center(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(backdrop),
	)
}

func box() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("252")).
		BorderBackground(backdrop).
		Padding(1, 2).
		Width(60)
}
