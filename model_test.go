package main

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-chart/clipboard"
	"github.com/andareed/siftly-chart/config"
	"github.com/andareed/siftly-chart/dataset"
	"github.com/andareed/siftly-chart/dialogs"
	"github.com/andareed/siftly-chart/interact"
	"github.com/andareed/siftly-chart/viewport"
)

var day0 = time.Date(2021, time.May, 3, 0, 0, 0, 0, time.Local)

type fakeCopier struct {
	texts []string
	err   error
}

func (f *fakeCopier) Copy(text string) (clipboard.Method, error) {
	if f.err != nil {
		return "", f.err
	}
	f.texts = append(f.texts, text)
	return clipboard.System, nil
}

// newTestModel sizes the terminal so that row i of the full range is on
// column plotLeft+i in both charts.
func newTestModel(t *testing.T) (*model, *fakeCopier) {
	t.Helper()
	points := make([]dataset.PricePoint, 100)
	for i := range points {
		points[i] = dataset.PricePoint{
			Date:   day0.AddDate(0, 0, i),
			Open:   100 + float64(i%7),
			Volume: 1000 + float64(i),
		}
	}
	ds, err := dataset.New(points)
	require.NoError(t, err)

	m, err := newModel(config.Default(), "data/prices.csv", ds)
	require.NoError(t, err)
	fc := &fakeCopier{}
	m.clip = fc

	m.Update(tea.WindowSizeMsg{Width: m.detail.Gutter() + 101, Height: 40})
	require.True(t, m.detail.Frame().Ready())
	require.True(t, m.overview.Frame().Ready())
	return m, fc
}

func (m *model) plotLeft() int { return m.detail.Frame().Area.Left }

func (m *model) overviewY() int { return m.detail.Height() + 1 }

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSizeLaysOutSurfaces(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, 40, m.detail.Height()+m.overview.Height()+footerHeight)
	assert.Equal(t, m.detail.Frame().Area.Left, m.overview.Frame().Area.Left)
	assert.Equal(t, m.detail.Frame().Area.Right, m.overview.Frame().Area.Right)

	view := m.View()
	assert.Equal(t, 39, strings.Count(view, "\n"))
	plain := ansi.Strip(view)
	assert.Contains(t, plain, "prices.csv")
	assert.Contains(t, plain, "IDLE")
	assert.Contains(t, plain, "Window: full range")
}

func TestTinyTerminalDoesNotPanic(t *testing.T) {
	m, _ := newTestModel(t)
	assert.NotPanics(t, func() {
		m.Update(tea.WindowSizeMsg{Width: 10, Height: 3})
		m.View()
		m.Update(tea.WindowSizeMsg{Width: 0, Height: 0})
		m.View()
	})
}

func TestOverviewDragAndGlobalRelease(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.vp.SetIndices(20, 40))
	left := m.plotLeft()

	m.Update(press(left+20, m.overviewY()))
	assert.Equal(t, interact.DraggingLeftHandle, m.ctrl.State())
	assert.Equal(t, interact.CursorResize, m.pointer)

	// moves keep tracking once the pointer leaves the overview
	m.Update(motion(left+10, 2))
	assert.Equal(t, viewport.Range{Start: 10, End: 40}, m.vp.Range())
	assert.Contains(t, ansi.Strip(m.View()), "DRAG LEFT")

	m.Update(release(left+10, 2))
	assert.Equal(t, interact.Idle, m.ctrl.State())
	assert.Equal(t, interact.CursorDefault, m.pointer)

	m.Update(motion(left+30, m.overviewY()))
	assert.Equal(t, viewport.Range{Start: 10, End: 40}, m.vp.Range(), "no drag after release")
	assert.Equal(t, interact.CursorMove, m.pointer)
}

func TestBodyDragPansAndBlurEndsIt(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.vp.SetIndices(20, 40))
	left := m.plotLeft()

	m.Update(press(left+30, m.overviewY()))
	require.Equal(t, interact.DraggingBody, m.ctrl.State())
	m.Update(motion(left+45, m.overviewY()))
	assert.Equal(t, viewport.Range{Start: 35, End: 55}, m.vp.Range())

	m.Update(tea.BlurMsg{})
	assert.Equal(t, interact.Idle, m.ctrl.State())
}

func TestPressOnDetailDoesNotDrag(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.vp.SetIndices(20, 40))

	m.Update(press(m.plotLeft()+20, 3))
	assert.Equal(t, interact.Idle, m.ctrl.State())
}

func TestWheelZoomsDetailAndRedrawsBoth(t *testing.T) {
	m, _ := newTestModel(t)
	m.View()
	detailDraws, overviewDraws := m.detail.Draws(), m.overview.Draws()

	m.Update(tea.MouseMsg{X: m.plotLeft() + 50, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, viewport.Range{Start: 1, End: 98}, m.vp.Range(), "wheel up zooms in")

	m.View()
	assert.Equal(t, detailDraws+1, m.detail.Draws())
	assert.Equal(t, overviewDraws+1, m.overview.Draws())

	m.Update(tea.MouseMsg{X: m.plotLeft() + 50, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, viewport.Range{Start: 0, End: 99}, m.vp.Range(), "wheel down zooms out")

	// the wheel over the overview is ignored
	m.Update(tea.MouseMsg{X: m.plotLeft() + 50, Y: m.overviewY(), Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, viewport.Range{Start: 0, End: 99}, m.vp.Range())
}

func TestCrosshairFollowsPointer(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(motion(m.plotLeft()+5, 3))
	_, _, active := m.cross.Pointer()
	assert.True(t, active)
	assert.Contains(t, ansi.Strip(m.View()), "HOVER: 2021-05-08")

	m.Update(motion(m.plotLeft()+5, m.overviewY()))
	_, _, active = m.cross.Pointer()
	assert.False(t, active)
}

func TestKeyNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("+"))
	assert.Equal(t, viewport.Range{Start: 1, End: 98}, m.vp.Range())
	m.Update(runes("-"))
	assert.Equal(t, viewport.Range{Start: 0, End: 99}, m.vp.Range())

	require.NoError(t, m.vp.SetIndices(20, 40))
	m.Update(runes("l"))
	assert.Equal(t, viewport.Range{Start: 22, End: 42}, m.vp.Range())
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, viewport.Range{Start: 20, End: 40}, m.vp.Range())

	m.Update(runes("r"))
	assert.True(t, m.vp.IsFull())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestHelpDialogCapturesKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("?"))
	require.NotNil(t, m.activeDialog)
	assert.Contains(t, ansi.Strip(m.View()), "zoom in at centre")

	m.Update(runes("+"))
	assert.True(t, m.vp.IsFull(), "keys go to the dialog")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.activeDialog)
}

func TestWindowAndJumpCommands(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("t"))
	require.Equal(t, modeCommand, m.ui.mode)
	m.Update(runes("2021-05-13"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(runes("2021-05-23"))
	assert.Contains(t, ansi.Strip(m.View()), "[WINDOW] from to: 2021-05-13")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, viewport.Range{Start: 10, End: 20}, m.vp.Range())

	m.Update(runes(":"))
	m.Update(runes("2021-06-22"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewport.Range{Start: 45, End: 55}, m.vp.Range())

	m.Update(runes("t"))
	m.Update(runes("soon"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, viewport.Range{Start: 45, End: 55}, m.vp.Range())
	assert.Equal(t, noticeWarn, m.ui.noticeType)

	m.Update(runes(":"))
	m.Update(runes("x"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeView, m.ui.mode)
	assert.Empty(t, m.ui.command.buf)
}

func TestParseWindowInput(t *testing.T) {
	from, to, err := parseWindowInput("2021-05-23..2021-05-13")
	require.NoError(t, err)
	assert.Equal(t, day0.AddDate(0, 0, 10), from)
	assert.Equal(t, day0.AddDate(0, 0, 20), to)

	_, _, err = parseWindowInput("2021-05-13")
	assert.ErrorIs(t, err, errWindowInput)
	_, _, err = parseWindowInput("2021-05-13,nope")
	assert.Error(t, err)
}

func TestCopyHoveredRow(t *testing.T) {
	m, fc := newTestModel(t)

	m.Update(runes("y"))
	assert.Empty(t, fc.texts)
	assert.Equal(t, noticeWarn, m.ui.noticeType)

	m.Update(motion(m.plotLeft()+5, 3))
	m.Update(runes("y"))
	require.Len(t, fc.texts, 1)
	assert.Equal(t, "2021-05-08\t105.00\t1005", fc.texts[0])
	assert.Equal(t, noticeSuccess, m.ui.noticeType)
}

func TestNoticeClearsOnlyForLatest(t *testing.T) {
	m, _ := newTestModel(t)
	m.notify(noticeInfo, "first")
	m.notify(noticeInfo, "second")

	m.Update(clearNoticeMsg{id: 1})
	assert.Equal(t, "second", m.ui.noticeMsg)
	m.Update(clearNoticeMsg{id: 2})
	assert.Empty(t, m.ui.noticeMsg)
}

func TestExportFlow(t *testing.T) {
	m, _ := newTestModel(t)
	m.cfg.ExportDir = t.TempDir()
	require.NoError(t, m.vp.SetIndices(10, 30))

	m.Update(runes("p"))
	require.IsType(t, &dialogs.Export{}, m.activeDialog)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	confirmed := cmd()
	require.IsType(t, dialogs.ExportConfirmedMsg{}, confirmed)

	_, cmd = m.Update(confirmed)
	require.NotNil(t, cmd)
	done, ok := cmd().(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	_, err := os.Stat(done.path)
	assert.NoError(t, err)

	m.Update(done)
	assert.Equal(t, noticeSuccess, m.ui.noticeType)
	assert.Nil(t, m.activeDialog)
}

func TestRenderFooterFillsWidth(t *testing.T) {
	st := FooterState{
		Mode:          "IDLE",
		FileName:      "prices.csv",
		Hover:         "2021-05-08",
		Cursor:        "move",
		Row:           21,
		TotalRows:     100,
		StatusMessage: "Window: 2021-05-13 → 2021-05-23 (21 rows)",
		Legend:        "(? help)",
	}
	out := RenderFooter(80, st, DefaultFooterStyles())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 80, ansi.StringWidth(lines[0]))
	assert.Equal(t, 80, ansi.StringWidth(lines[1]))

	plain := ansi.Strip(out)
	assert.Contains(t, plain, " IDLE ")
	assert.Contains(t, plain, "Rows 21/100")
	assert.Contains(t, plain, "[HOVER: 2021-05-08] · [CURSOR: move]")
	assert.Contains(t, plain, "(? help)")

	assert.Empty(t, RenderFooter(0, st, DefaultFooterStyles()))
}

func TestNoticeText(t *testing.T) {
	assert.Equal(t, "", noticeText("", noticeInfo))
	assert.Equal(t, "✓ done", noticeText("done", noticeSuccess))
	assert.Equal(t, "plain", noticeText("plain", ""))
	assert.Equal(t, noticeDuration, noticeWarn.duration())
	assert.Greater(t, noticeError.duration(), noticeDuration)
}
