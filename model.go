package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-chart/clipboard"
	"github.com/andareed/siftly-chart/config"
	"github.com/andareed/siftly-chart/dataset"
	"github.com/andareed/siftly-chart/dialogs"
	"github.com/andareed/siftly-chart/export"
	"github.com/andareed/siftly-chart/interact"
	"github.com/andareed/siftly-chart/logging"
	"github.com/andareed/siftly-chart/money"
	"github.com/andareed/siftly-chart/overlay"
	"github.com/andareed/siftly-chart/surface"
	"github.com/andareed/siftly-chart/viewport"
)

const footerHeight = 2

type copier interface {
	Copy(text string) (clipboard.Method, error)
}

type exportDoneMsg struct {
	path string
	err  error
}

type model struct {
	cfg  *config.Config
	path string

	vp       *viewport.Viewport
	ctrl     *interact.Controller
	detail   *surface.Surface
	overview *surface.Surface
	cross    *overlay.Crosshair
	band     *overlay.SliderBand

	money *money.Formatter
	clip  copier

	activeDialog dialogs.Dialog
	ui           uiState

	ready          bool
	terminalWidth  int
	terminalHeight int
	pointer        interact.Cursor
}

func newModel(cfg *config.Config, path string, ds *dataset.Dataset) (*model, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	mf, err := money.New(cfg.Currency)
	if err != nil {
		return nil, err
	}

	vp := viewport.New(ds)
	opts := surface.Options{Palette: pal, Money: mf, Aspect: cfg.OverviewAspect}
	detail := surface.New(surface.Detail, vp, opts)
	overview := surface.New(surface.Overview, vp, opts)
	overview.AlignTo(detail)
	// the detail chart repaints before the overview re-snaps its band
	vp.Subscribe(detail.Update)
	vp.Subscribe(overview.Update)

	ctrl := interact.New(vp, cfg.Tuning.Interact())
	cross := overlay.NewCrosshair()
	band := overlay.NewSliderBand(ctrl)
	detail.AddPlugin(overlay.OpeningLine{})
	detail.AddPlugin(cross)
	overview.AddPlugin(band)

	return &model{
		cfg:      cfg,
		path:     path,
		vp:       vp,
		ctrl:     ctrl,
		detail:   detail,
		overview: overview,
		cross:    cross,
		band:     band,
		money:    mf,
		clip:     clipboard.New(),
		pointer:  interact.CursorDefault,
	}, nil
}

func (m *model) Init() tea.Cmd {
	logging.Infof("siftly-chart: Initialised with %d rows", m.vp.Dataset().Len())
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth, m.terminalHeight = msg.Width, msg.Height
		m.layout()
		m.ready = true
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.BlurMsg:
		m.endDrag()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case clearNoticeMsg:
		m.clearNotice(msg.id)
		return m, nil
	case dialogs.ExportConfirmedMsg:
		m.activeDialog = nil
		return m, m.exportWindow(msg.Dir)
	case dialogs.ExportCanceledMsg:
		m.activeDialog = nil
		return m, m.notify(noticeInfo, "Export cancelled")
	case exportDoneMsg:
		if msg.err != nil {
			logging.Errorf("export failed: %v", msg.err)
			return m, m.notify(noticeError, "Export failed: "+msg.err.Error())
		}
		return m, m.notify(noticeSuccess, "Exported "+msg.path)
	}
	return m, nil
}

// layout splits the terminal into the detail chart, the overview and the
// footer. The overview keeps its aspect ratio and the detail chart takes the
// rest.
func (m *model) layout() {
	w, h := m.terminalWidth, m.terminalHeight
	oh := surface.OverviewHeight(w, m.cfg.OverviewAspect)
	dh := h - oh - footerHeight
	if dh < 0 {
		oh = max(0, h-footerHeight)
		dh = 0
	}
	logging.Debugf("layout term=%dx%d detail=%d overview=%d", w, h, dh, oh)
	m.detail.Resize(w, dh)
	m.overview.Resize(w, oh)
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		d, cmd := m.activeDialog.Update(msg)
		m.activeDialog = d
		if !d.IsVisible() {
			m.activeDialog = nil
		}
		return m, cmd
	}
	if m.ui.mode == modeCommand {
		return m.handleCommandKey(msg)
	}
	return m.handleViewKey(msg)
}

func (m *model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.OpenHelp):
		m.activeDialog = dialogs.NewHelpDialog(Keys.Legend())
	case key.Matches(msg, Keys.ZoomIn):
		m.ctrl.ZoomAt(-1, true)
	case key.Matches(msg, Keys.ZoomOut):
		m.ctrl.ZoomAt(-1, false)
	case key.Matches(msg, Keys.PanLeft):
		m.ctrl.Pan(-m.panStep())
	case key.Matches(msg, Keys.PanRight):
		m.ctrl.Pan(m.panStep())
	case key.Matches(msg, Keys.Reset):
		m.ctrl.Reset()
		m.overview.Invalidate()
	case key.Matches(msg, Keys.CopyRow):
		return m, m.copyHoveredRow()
	case key.Matches(msg, Keys.Export):
		d := dialogs.NewExportDialog(m.cfg.ExportDir, export.FileName(m.vp))
		m.activeDialog = d
		return m, d.Init()
	case key.Matches(msg, Keys.JumpDate, Keys.SetWindow):
		m.enterCommandMode(CommandFromPrefix([]rune(msg.String())[0]))
	}
	return m, nil
}

func (m *model) panStep() int {
	return max(1, m.vp.Width()/10)
}

// region Mouse

func (m *model) handleMouse(msg tea.MouseMsg) {
	dh := m.detail.Height()
	inDetail := msg.Y >= 0 && msg.Y < dh
	inOverview := msg.Y >= dh && msg.Y < dh+m.overview.Height()

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if !inDetail {
			return
		}
		// wheel up zooms in
		delta := -1.0
		if msg.Button == tea.MouseButtonWheelUp {
			delta = 1
		}
		m.ctrl.Wheel(msg.X, delta, m.detail.Frame())
		m.detail.Invalidate()
	case msg.Action == tea.MouseActionRelease:
		m.endDrag()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inOverview {
			state := m.ctrl.PointerDown(msg.X, m.overview.Frame())
			m.pointer = m.ctrl.Cursor(msg.X, m.overview.Frame())
			logging.Debugf("overview press x=%d state=%s", msg.X, state)
			m.overview.Invalidate()
		}
	case msg.Action == tea.MouseActionMotion:
		m.pointerMoved(msg.X, msg.Y, inDetail, inOverview)
	}
}

func (m *model) pointerMoved(x, y int, inDetail, inOverview bool) {
	if inDetail {
		m.cross.Move(x, y)
	} else {
		m.cross.Leave()
	}
	m.detail.Invalidate()

	of := m.overview.Frame()
	dragging := m.ctrl.State() != interact.Idle
	if dragging {
		m.ctrl.PointerMove(x, of)
	}
	if inOverview {
		m.band.Hover(x)
	} else {
		m.band.Leave()
	}
	m.pointer = interact.CursorDefault
	if inOverview || dragging {
		m.pointer = m.ctrl.Cursor(x, of)
	}
	m.overview.Invalidate()
}

// endDrag ends a drag wherever the release happened.
func (m *model) endDrag() {
	if m.ctrl.State() == interact.Idle {
		return
	}
	m.ctrl.PointerUp()
	m.pointer = interact.CursorDefault
	m.overview.Invalidate()
}

// endregion

// hoveredRow returns the dataset row under the crosshair.
func (m *model) hoveredRow() (dataset.PricePoint, bool) {
	f := m.detail.Frame()
	if !m.cross.Visible(f) {
		return dataset.PricePoint{}, false
	}
	x, _, _ := m.cross.Pointer()
	t, ok := f.TimeAt(x)
	if !ok {
		return dataset.PricePoint{}, false
	}
	ds := m.vp.Dataset()
	i := ds.IndexAt(t)
	if i < 0 {
		return dataset.PricePoint{}, false
	}
	return ds.At(i), true
}

// formatRow renders a row as date, open and volume separated by tabs.
func formatRow(p dataset.PricePoint) string {
	return strings.Join([]string{
		p.Date.Format(windowLayout),
		strconv.FormatFloat(p.Open, 'f', 2, 64),
		strconv.FormatFloat(p.Volume, 'f', -1, 64),
	}, "\t")
}

func (m *model) copyHoveredRow() tea.Cmd {
	p, ok := m.hoveredRow()
	if !ok {
		return m.notify(noticeWarn, "Hover a day on the chart to copy it")
	}
	method, err := m.clip.Copy(formatRow(p))
	if err != nil {
		logging.Warnf("copy failed: %v", err)
		return m.notify(noticeError, "Copy failed: "+err.Error())
	}
	return m.notify(noticeSuccess, fmt.Sprintf("Copied %s (%s)", p.Date.Format(windowLayout), method))
}

// exportWindow renders the visible window off the event loop from a copy of
// the viewport.
func (m *model) exportWindow(dir string) tea.Cmd {
	r := m.vp.Range()
	snap := viewport.New(m.vp.Dataset())
	if err := snap.SetIndices(r.Start, r.End); err != nil {
		return m.notify(noticeError, "Export failed: "+err.Error())
	}
	mf, err := money.New(m.money.Code())
	if err != nil {
		return m.notify(noticeError, "Export failed: "+err.Error())
	}
	opts := export.Options{Dir: dir, Palette: m.detail.Palette(), Money: mf, Font: m.cfg.Font}
	return func() tea.Msg {
		path, err := export.Write(snap, opts)
		return exportDoneMsg{path: path, err: err}
	}
}
