package dialogs

import tea "github.com/charmbracelet/bubbletea"

// Dialog is a modal drawn over the chart. While one is visible it receives
// every key and the chart receives none.
type Dialog interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string

	Focus() tea.Cmd
	Blur()
	IsVisible() bool
	Show()
	Hide()
}
