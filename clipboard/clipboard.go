// Package clipboard copies text to the system clipboard, falling back to an
// OSC52 escape sequence when no system clipboard is reachable (SSH sessions,
// headless Linux).
package clipboard

import (
	"errors"
	"io"
	"os"
	"strings"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/andareed/siftly-chart/logging"
)

var ErrUnavailable = errors.New("clipboard unavailable (no system clipboard and OSC52 unsupported by terminal)")

// Method names how the last copy reached the clipboard.
type Method string

const (
	System Method = "system"
	OSC52  Method = "osc52"
)

// Copier writes to the system clipboard or, failing that, emits OSC52 on a
// terminal writer.
type Copier struct {
	system func(string) error
	out    io.Writer
	getenv func(string) string
	tty    bool
}

// New returns a Copier bound to the process clipboard and stderr. Stderr is
// used for OSC52 because bubbletea owns stdout.
func New() *Copier {
	c := &Copier{
		out:    os.Stderr,
		getenv: os.Getenv,
		tty:    isTTY(os.Stderr),
	}
	if !sysclip.Unsupported {
		c.system = sysclip.WriteAll
	}
	return c
}

// Copy places text on the clipboard and reports which route was used.
func (c *Copier) Copy(text string) (Method, error) {
	if c.system != nil {
		err := c.system(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes via system clipboard", len(text))
			return System, nil
		}
		logging.Debugf("Clipboard: system copy failed: %v", err)
	}

	if !c.osc52Supported() {
		logging.Warnf("Clipboard: OSC52 unavailable (not a TTY or TERM=dumb)")
		return "", ErrUnavailable
	}
	seq := osc52.New(text)
	term := c.getenv("TERM")
	switch {
	case c.getenv("TMUX") != "" || strings.HasPrefix(term, "tmux"):
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		logging.Warnf("Clipboard: OSC52 write failed: %v", err)
		return "", err
	}
	logging.Infof("Clipboard: copied via OSC52")
	return OSC52, nil
}

func (c *Copier) osc52Supported() bool {
	if term := c.getenv("TERM"); term == "" || strings.EqualFold(term, "dumb") {
		return false
	}
	return c.tty
}

func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
