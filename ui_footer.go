package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	footerGap = 1
	hoverW    = 10
	cursorW   = 9
	minFileW  = 12
	minPointW = 10
)

// pointerSegmentW is the width of the hover/cursor segment with both values
// at their widest.
var pointerSegmentW = runewidth.StringWidth(pointerLabel(strings.Repeat("X", hoverW), strings.Repeat("X", cursorW)))

type FooterState struct {
	Mode      string
	Dragging  bool
	ModeInput string

	FileName string

	Hover  string
	Cursor string

	Row       int
	TotalRows int

	StatusMessage string
	Legend        string
}

type FooterStyles struct {
	Bar      lipgloss.Style
	Status   lipgloss.Style
	ModePill lipgloss.Style
	DragPill lipgloss.Style
	FileName lipgloss.Style
	Dim      lipgloss.Style
	Legend   lipgloss.Style
}

func DefaultFooterStyles() FooterStyles {
	bar := lipgloss.NewStyle().
		Background(lipgloss.Color(footerBarBGColor)).
		Foreground(lipgloss.Color(footerTextFGColor))
	status := lipgloss.NewStyle().
		Background(lipgloss.Color(footerStatusBGColor)).
		Foreground(lipgloss.Color(statusFGColor))
	pill := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(modePillFGColor))

	return FooterStyles{
		Bar:      bar,
		Status:   status,
		ModePill: pill.Background(lipgloss.Color(modePillBGColor)),
		DragPill: pill.Background(lipgloss.Color(dragPillBGColor)),
		FileName: bar.Foreground(lipgloss.Color(fileNameFGColor)),
		Dim:      bar.Foreground(lipgloss.Color(footerDimFGColor)),
		Legend:   status.Foreground(lipgloss.Color(legendFGColor)),
	}
}

// RenderFooter draws the control bar and the status bar, each exactly width
// cells wide.
func RenderFooter(width int, st FooterState, styles FooterStyles) string {
	if width <= 0 {
		return ""
	}
	if st.Mode == "" {
		st.Mode = "IDLE"
	}
	if st.Hover == "" {
		st.Hover = "-"
	}
	if st.Cursor == "" {
		st.Cursor = "default"
	}
	st.Row = max(st.Row, 0)
	st.TotalRows = max(st.TotalRows, 0)

	return controlBar(width, st, styles) + "\n" + statusBar(width, st, styles)
}

func controlBar(width int, st FooterState, styles FooterStyles) string {
	rows := fitPlain(fmt.Sprintf(" Rows %d/%d", st.Row, st.TotalRows), width)
	leftW := width - runewidth.StringWidth(rows)

	pill := fitPlain(" "+st.Mode+" ", leftW)
	modeW, fileW, pointW := footerColumns(leftW, runewidth.StringWidth(pill))

	pillStyle := styles.ModePill
	if st.Dragging {
		pillStyle = styles.DragPill
	}
	gap := styles.Bar.Render(strings.Repeat(" ", footerGap))

	var b strings.Builder
	b.WriteString(pillStyle.Render(fitPlain(pill, modeW)))
	b.WriteString(gap)
	b.WriteString(fileSegment(fileW, st, styles))
	b.WriteString(gap)
	b.WriteString(styles.Dim.Render(padPlain(pointerLabel(fitPlain(st.Hover, hoverW), fitPlain(st.Cursor, cursorW)), pointW)))
	line := fitStyled(b.String(), leftW, styles.Bar)
	return line + styles.Bar.Render(rows)
}

// footerColumns splits the left part of the control bar. The file segment
// takes the slack and may borrow from the pointer segment down to minPointW.
func footerColumns(leftW, pillW int) (modeW, fileW, pointW int) {
	modeW = min(pillW, max(0, leftW))
	rest := max(0, leftW-modeW-2*footerGap)
	pointW = min(pointerSegmentW, rest)
	fileW = rest - pointW
	if fileW < minFileW && pointW > minPointW {
		give := min(minFileW-fileW, pointW-minPointW)
		pointW -= give
		fileW += give
	}
	return modeW, fileW, pointW
}

func fileSegment(w int, st FooterState, styles FooterStyles) string {
	if w <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.FileName)
	if name == "" {
		name = "(no file)"
	}
	file := fitPlain("▸ "+name, w)
	input := ""
	if in := strings.TrimSpace(st.ModeInput); in != "" {
		input = fitPlain(" ▸ "+in, w-runewidth.StringWidth(file))
	}
	return styles.FileName.Render(file) + styles.Bar.Render(padPlain(input, w-runewidth.StringWidth(file)))
}

func statusBar(width int, st FooterState, styles FooterStyles) string {
	legend := fitPlain(st.Legend, width)
	msgW := width - runewidth.StringWidth(legend)
	msg := padPlain(fitPlain(st.StatusMessage, msgW), msgW)
	return styles.Status.Render(msg) + styles.Legend.Render(legend)
}

func pointerLabel(hover, cursor string) string {
	return fmt.Sprintf("[HOVER: %s] · [CURSOR: %s]", hover, cursor)
}

func commandLabel(cmd Command) string {
	switch cmd {
	case CmdJump:
		return "JUMP"
	case CmdWindow:
		return "WINDOW"
	default:
		return "NORMAL"
	}
}

func fitPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "")
}

func padPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.FillRight(fitPlain(s, w), w)
}

// fitStyled cuts or pads an already styled line to exactly w cells.
func fitStyled(s string, w int, pad lipgloss.Style) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "")
	if n := ansi.StringWidth(s); n < w {
		s += pad.Render(strings.Repeat(" ", w-n))
	}
	return s
}
