package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-chart/dialogs"
	"github.com/andareed/siftly-chart/interact"
	"github.com/andareed/siftly-chart/logging"
)

// footerView renders the 2-line footer for the terminal width.
func (m *model) footerView(width int) string {
	st := FooterState{
		Mode:      m.ctrl.State().String(),
		Dragging:  m.ctrl.State() != interact.Idle,
		FileName:  filepath.Base(m.path),
		Hover:     "-",
		Cursor:    string(m.pointer),
		Row:       m.vp.Width() + 1,
		TotalRows: m.vp.Dataset().Len(),
		Legend:    "(? help · wheel zoom · drag overview · : jump · t window · p export)",
	}
	if m.ui.mode == modeCommand {
		st.Mode = commandLabel(m.ui.command.cmd)
		st.ModeInput = m.activeCommandLine()
	}
	if p, ok := m.hoveredRow(); ok {
		st.Hover = p.Date.Format(windowLayout)
	}
	if m.ui.noticeMsg != "" {
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	}
	if st.StatusMessage == "" {
		st.StatusMessage = m.windowStatusLabel()
	}

	if logging.IsDebugMode() {
		debug := fmt.Sprintf(" dbg term=%dx%d detail=%dx%d overview=%dx%d gutter=%d draws=%d/%d",
			m.terminalWidth, m.terminalHeight,
			m.detail.Width(), m.detail.Height(), m.overview.Width(), m.overview.Height(),
			m.detail.Gutter(), m.detail.Draws(), m.overview.Draws(),
		)
		st.Legend = st.Legend + " |" + debug
	}

	return RenderFooter(width, st, DefaultFooterStyles())
}

func (m *model) View() string {
	if !m.ready {
		return loadingStyle.Render("loading...")
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return dialogs.Center(m.activeDialog.View(), m.terminalWidth, m.terminalHeight)
	}

	var parts []string
	if m.detail.Height() > 0 {
		parts = append(parts, m.detail.View())
	}
	if m.overview.Height() > 0 {
		parts = append(parts, m.overview.View())
	}
	parts = append(parts, m.footerView(m.terminalWidth))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
