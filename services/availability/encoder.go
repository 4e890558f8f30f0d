package availability

import (
	"time"

	"availcal/models"
)

// Encode flattens the tree into one range per maximal run of available slots,
// day by day in chronological order. Dates are built in loc (UTC when nil).
func Encode(t *Tree, loc *time.Location) []models.AvailabilityRange {
	if loc == nil {
		loc = time.UTC
	}
	var out []models.AvailabilityRange
	for _, key := range t.Keys() {
		slots, _ := t.Day(key)
		out = appendDayRanges(out, t.cfg, key, slots, loc)
	}
	return out
}

func appendDayRanges(out []models.AvailabilityRange, cfg SlotConfig, key models.DayKey, slots models.DaySlots, loc *time.Location) []models.AvailabilityRange {
	runStart := -1
	for i, s := range slots {
		switch {
		case s.Available && runStart < 0:
			runStart = i
		case !s.Available && runStart >= 0:
			out = append(out, dayRange(key, cfg.SlotStart(runStart), cfg.SlotStart(i), loc))
			runStart = -1
		}
	}
	// A run reaching the last slot closes at the end of the window.
	if runStart >= 0 {
		if start, end := cfg.SlotStart(runStart), cfg.End; start < end {
			out = append(out, dayRange(key, start, end, loc))
		}
	}
	return out
}

func dayRange(key models.DayKey, startMin, endMin int, loc *time.Location) models.AvailabilityRange {
	return models.AvailabilityRange{
		Start: clockOn(key, startMin, loc),
		End:   clockOn(key, endMin, loc),
	}
}

func clockOn(key models.DayKey, minutes int, loc *time.Location) time.Time {
	return time.Date(key.Year, key.Month, key.Day, minutes/60, minutes%60, 0, 0, loc)
}
