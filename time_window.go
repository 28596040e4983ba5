package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andareed/siftly-chart/dataset"
)

const windowLayout = "2006-01-02"

var errWindowInput = errors.New("want two dates: YYYY-MM-DD YYYY-MM-DD")

func parseDateInput(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("no date given")
	}
	t, err := dataset.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

// parseWindowInput reads "from to", also accepting "from..to" and
// "from,to".
func parseWindowInput(raw string) (time.Time, time.Time, error) {
	raw = strings.NewReplacer("..", " ", ",", " ").Replace(raw)
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return time.Time{}, time.Time{}, errWindowInput
	}
	from, err := parseDateInput(fields[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDateInput(fields[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		from, to = to, from
	}
	return from, to, nil
}

// windowStatusLabel describes the visible window for the footer.
func (m *model) windowStatusLabel() string {
	if m.vp.IsFull() {
		return "Window: full range"
	}
	return fmt.Sprintf("Window: %s → %s (%d rows)",
		m.vp.StartDate().Format(windowLayout),
		m.vp.EndDate().Format(windowLayout),
		m.vp.Width()+1)
}
