package logging

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

var (
	logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	debug  bool
)

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except fatal errors).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
		debug = false
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	logger = log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "siftly-chart",
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
		ReportCaller:    true,
		CallerOffset:    1,
	})
	debug = true

	// configure Bubble Tea logger
	tf, err := tea.LogToFile(filename, "tea")
	if err != nil {
		f.Close()
		return nil, err
	}

	cleanup = func() {
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// SetOutput points the logger at w with debug output enabled. Used by tests.
func SetOutput(w io.Writer) {
	logger = log.NewWithOptions(w, log.Options{Level: log.DebugLevel})
	debug = true
}

func IsDebugMode() bool { return debug }

func Debugf(format string, args ...any) { logger.Debugf(format, args...) }

func Infof(format string, args ...any) { logger.Infof(format, args...) }

func Warnf(format string, args ...any) { logger.Warnf(format, args...) }

func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
