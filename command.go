package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type Command int

const (
	CmdNone Command = iota
	CmdJump
	CmdWindow
)

type CommandInput struct {
	cmd Command
	buf string
}

func CommandFromPrefix(r rune) Command {
	switch r {
	case ':':
		return CmdJump
	case 't':
		return CmdWindow
	default:
		return CmdNone
	}
}

func commandBadge(cmd Command) string {
	switch cmd {
	case CmdJump:
		return "[JUMP]"
	case CmdWindow:
		return "[WINDOW]"
	default:
		return "[NORMAL]"
	}
}

func commandPrompt(cmd Command) string {
	switch cmd {
	case CmdJump:
		return "date: "
	case CmdWindow:
		return "from to: "
	default:
		return ""
	}
}

// activeCommandLine returns the command prompt text for the footer.
func (m *model) activeCommandLine() string {
	return commandBadge(m.ui.command.cmd) + " " + commandPrompt(m.ui.command.cmd) + m.ui.command.buf
}

func (m *model) enterCommandMode(cmd Command) {
	m.ui.mode = modeCommand
	m.ui.command = CommandInput{cmd: cmd}
}

func (m *model) exitCommandMode() {
	m.ui.command = CommandInput{}
	m.ui.mode = modeView
}

func (m *model) runCommand() tea.Cmd {
	switch m.ui.command.cmd {
	case CmdJump:
		t, err := parseDateInput(m.ui.command.buf)
		if err != nil {
			return m.notify(noticeWarn, err.Error())
		}
		if !m.ctrl.CenterOn(t) {
			return m.notify(noticeInfo, "Window already there")
		}
		return nil

	case CmdWindow:
		from, to, err := parseWindowInput(m.ui.command.buf)
		if err != nil {
			return m.notify(noticeWarn, err.Error())
		}
		if err := m.ctrl.SetRange(from, to); err != nil {
			return m.notify(noticeWarn, fmt.Sprintf("Window rejected: %v", err))
		}
		return nil
	}
	return nil
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.exitCommandMode()
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		cmd := m.runCommand()
		m.exitCommandMode()
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(m.ui.command.buf); len(r) > 0 {
			m.ui.command.buf = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.ui.command.buf += " "
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.ui.command.buf += string(msg.Runes)
	}
	return m, nil
}
