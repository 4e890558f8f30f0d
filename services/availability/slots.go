package availability

import (
	"fmt"
	"strings"
	"time"

	"availcal/models"
)

const (
	DefaultStartTime = "8:00"
	DefaultEndTime   = "20:00"
	DefaultInterval  = 60

	MinInterval = 1
	MaxInterval = 60

	clockLayout = "15:04"
)

// SlotConfig is the business-hours window every day's slots are generated from.
// Start and End are minutes from midnight (e.g., 480 for 8:00).
type SlotConfig struct {
	Start    int `json:"start"`
	End      int `json:"end"`
	Interval int `json:"interval"`
}

// NewSlotConfig parses "H:mm"/"HH:mm" clocks and validates the interval.
func NewSlotConfig(startTime, endTime string, interval int) (SlotConfig, error) {
	if interval < MinInterval || interval > MaxInterval {
		return SlotConfig{}, &InvalidIntervalError{Code: CodeInvalidInterval, Interval: interval}
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return SlotConfig{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return SlotConfig{}, err
	}
	if start > end {
		return SlotConfig{}, newClockFormatError(startTime, fmt.Sprintf("start time is after end time %s", endTime))
	}
	return SlotConfig{Start: start, End: end, Interval: interval}, nil
}

// DefaultSlotConfig is the 8:00–20:00 hourly window.
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{Start: 8 * 60, End: 20 * 60, Interval: DefaultInterval}
}

// Validate re-checks a config that was not built through NewSlotConfig (e.g., decoded from JSON).
func (c SlotConfig) Validate() error {
	if c.Interval < MinInterval || c.Interval > MaxInterval {
		return &InvalidIntervalError{Code: CodeInvalidInterval, Interval: c.Interval}
	}
	if c.Start < 0 || c.End >= 24*60 || c.Start > c.End {
		return newClockFormatError(FormatClock(c.Start)+"-"+FormatClock(c.End), "window must lie within one day with start before end")
	}
	return nil
}

// ParseClock returns minutes from midnight for "H:mm" or "HH:mm".
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, newClockFormatError(s, "expected H:mm or HH:mm")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as zero-padded "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DefaultSlots returns the canonical all-unavailable slot template for cfg.
// Every day in a tree is initialized from here.
func DefaultSlots(cfg SlotConfig) models.DaySlots {
	if cfg.Interval <= 0 {
		return models.DaySlots{}
	}
	slots := make(models.DaySlots, 0, (cfg.End-cfg.Start)/cfg.Interval+1)
	for m := cfg.Start; m <= cfg.End; m += cfg.Interval {
		slots = append(slots, models.TimeSlot{Time: FormatClock(m), Available: false})
	}
	return slots
}

// SlotCount is the number of slots DefaultSlots generates.
func (c SlotConfig) SlotCount() int {
	if c.Interval <= 0 || c.Start > c.End {
		return 0
	}
	return (c.End-c.Start)/c.Interval + 1
}

// SlotStart returns the start of slot i in minutes from midnight.
func (c SlotConfig) SlotStart(i int) int {
	return c.Start + i*c.Interval
}

// SlotEnd returns the exclusive end of slot i. The last slot closes at the configured end time.
func (c SlotConfig) SlotEnd(i int) int {
	if i+1 < c.SlotCount() {
		return c.SlotStart(i + 1)
	}
	return c.End
}

// boundaryIndex maps minutes to a slot boundary: 0..n-1 for slot starts, n for the end time.
func (c SlotConfig) boundaryIndex(minutes int) (int, bool) {
	n := c.SlotCount()
	if minutes == c.End {
		last := c.SlotStart(n - 1)
		if last == c.End {
			return n - 1, true
		}
		return n, true
	}
	if minutes < c.Start || minutes > c.End || (minutes-c.Start)%c.Interval != 0 {
		return 0, false
	}
	return (minutes - c.Start) / c.Interval, true
}

// nearestBoundary clamps minutes to the closest slot boundary index.
func (c SlotConfig) nearestBoundary(minutes int) int {
	n := c.SlotCount()
	if minutes <= c.Start {
		return 0
	}
	if minutes >= c.End {
		if c.SlotStart(n-1) == c.End {
			return n - 1
		}
		return n
	}
	idx := (minutes - c.Start + c.Interval/2) / c.Interval
	// The remainder past the last slot start rounds against the end boundary instead.
	if idx >= n-1 {
		last := c.SlotStart(n - 1)
		if minutes-last < c.End-minutes || last == c.End {
			return n - 1
		}
		return n
	}
	return idx
}
