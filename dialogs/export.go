package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-chart/logging"
)

type (
	ExportConfirmedMsg struct{ Dir string }
	ExportCanceledMsg  struct{}
)

// Export asks for the directory the PNG of the visible window is written to.
type Export struct {
	input    textinput.Model
	visible  bool
	fileName string
}

// NewExportDialog prefills dir and shows fileName as the target name.
func NewExportDialog(dir, fileName string) *Export {
	ti := textinput.New()
	ti.Placeholder = dir
	ti.Prompt = "Export to: "
	ti.CharLimit = 256
	ti.Width = 50
	ti.SetValue(dir)
	ti.Focus()
	return &Export{input: ti, visible: true, fileName: fileName}
}

func (d *Export) Init() tea.Cmd { return textinput.Blink }

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			dir := strings.TrimSpace(d.input.Value())
			if dir == "" {
				dir = d.input.Placeholder
			}
			if dir == "" {
				return d, nil
			}
			logging.Debugf("ExportDialog: confirmed %s", dir)
			d.Hide()
			return d, func() tea.Msg { return ExportConfirmedMsg{Dir: dir} }
		case "esc":
			d.Hide()
			return d, func() tea.Msg { return ExportCanceledMsg{} }
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *Export) View() string {
	if !d.visible {
		return ""
	}
	name := lipgloss.NewStyle().Faint(true).Render("file: " + d.fileName)
	hint := lipgloss.NewStyle().Faint(true).Render("enter to export • esc to cancel")
	return box().Render(fmt.Sprintf("%s\n%s\n\n%s", d.input.View(), name, hint))
}

func (d *Export) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Export) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Export) Focus() tea.Cmd  { return d.input.Focus() }
func (d *Export) Blur()           { d.input.Blur() }
func (d *Export) IsVisible() bool { return d.visible }
