package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage and wire format for calendar dates.
const DateLayout = "2006-01-02"

// Window is a half-open time-of-day interval [Start, End), expressed in
// minutes from midnight. Times are wall-clock in the location's local
// time; no timezone arithmetic is applied beyond what the platform
// reports.
type Window struct {
	Start int `json:"start"` // minutes from midnight
	End   int `json:"end"`   // minutes from midnight, exclusive
}

// Valid reports whether the window has positive extent within a day.
func (w Window) Valid() bool {
	return w.Start >= 0 && w.End <= 24*60 && w.End > w.Start
}

// Contains reports whether the minute m lies inside the window.
func (w Window) Contains(m int) bool {
	return m >= w.Start && m < w.End
}

// Overlaps reports whether the two windows share at least one minute.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && o.Start < w.End
}

// SlotFits reports whether a slot of durationMinutes starting at
// slotStart lies entirely within the window. A slot ending exactly at
// the window end fits.
func (w Window) SlotFits(slotStart, durationMinutes int) bool {
	if durationMinutes <= 0 {
		return false
	}
	return slotStart >= w.Start && slotStart+durationMinutes <= w.End
}

// String renders the window as "HH:MM-HH:MM".
func (w Window) String() string {
	return FormatClock(w.Start) + "-" + FormatClock(w.End)
}

// ParseClock converts a wall-clock value ("18:00" or "18:00:00") to
// minutes from midnight. "24:00" is accepted as the end-of-day bound.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h == 24 && m == 0 {
		return 24 * 60, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseDate validates a "2006-01-02" date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return t, nil
}
