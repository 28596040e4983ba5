package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-chart/logging"
)

// Help lists key bindings and the mouse gestures of the chart.
type Help struct {
	visible  bool
	bindings []key.Binding
}

var mouseHelp = [][2]string{
	{"wheel", "up zooms in, down zooms out, around the pointer"},
	{"drag edge", "move one side of the overview window"},
	{"drag band", "pan the overview window"},
}

func NewHelpDialog(bindings []key.Binding) *Help {
	return &Help{visible: true, bindings: bindings}
}

func (d *Help) Init() tea.Cmd { return nil }

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?", "q":
			logging.Debugf("HelpDialog: closed with %q", m.String())
			d.visible = false
		}
	}
	return d, nil
}

func (d *Help) View() string {
	if !d.visible {
		return ""
	}
	var lines []string
	for _, b := range d.bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-12s %s", h.Key, h.Desc))
	}
	lines = append(lines, "")
	for _, g := range mouseHelp {
		lines = append(lines, fmt.Sprintf("%-12s %s", g[0], g[1]))
	}

	hint := lipgloss.NewStyle().Faint(true).Render("enter/esc to return")
	return box().Render(fmt.Sprintf("%s\n\n%s", strings.Join(lines, "\n"), hint))
}

func (d *Help) Show()           { d.visible = true }
func (d *Help) Hide()           { d.visible = false }
func (d *Help) Focus() tea.Cmd  { return nil }
func (d *Help) Blur()           {}
func (d *Help) IsVisible() bool { return d.visible }
