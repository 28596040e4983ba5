package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type noticeKind string

const (
	noticeInfo    noticeKind = "info"
	noticeSuccess noticeKind = "success"
	noticeWarn    noticeKind = "warn"
	noticeError   noticeKind = "error"
)

var noticeIcons = map[noticeKind]string{
	noticeInfo:    "ℹ",
	noticeSuccess: "✓",
	noticeWarn:    "!",
	noticeError:   "×",
}

const noticeDuration = 2 * time.Second

// errors stay up long enough to read a wrapped path
func (k noticeKind) duration() time.Duration {
	if k == noticeError {
		return 2 * noticeDuration
	}
	return noticeDuration
}

type clearNoticeMsg struct{ id int }

func noticeText(msg string, kind noticeKind) string {
	if msg == "" {
		return ""
	}
	if icon, ok := noticeIcons[kind]; ok {
		return icon + " " + msg
	}
	return msg
}

// notify replaces the current notice. Only the timer of the latest notice
// clears the status line.
func (m *model) notify(kind noticeKind, msg string) tea.Cmd {
	m.ui.noticeSeq++
	m.ui.noticeMsg, m.ui.noticeType = msg, kind
	id := m.ui.noticeSeq
	return tea.Tick(kind.duration(), func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (m *model) clearNotice(id int) {
	if id == m.ui.noticeSeq {
		m.ui.noticeMsg, m.ui.noticeType = "", ""
	}
}
