package availability

import (
	"fmt"
	"time"

	"availcal/models"
)

const dayLabelLayout = "January 2, 2006"

// BuildQuickIndex groups future ranges by day for hover previews. Only ranges
// starting strictly after now are included; order follows the input.
func BuildQuickIndex(ranges []models.AvailabilityRange, now time.Time, loc *time.Location) models.QuickAvailabilityIndex {
	if loc == nil {
		loc = time.UTC
	}
	out := models.QuickAvailabilityIndex{}
	for _, r := range ranges {
		if !r.Start.After(now) {
			continue
		}
		start, end := r.Start.In(loc), r.End.In(loc)
		day := start.Format(dayLabelLayout)
		out[day] = append(out[day], fmt.Sprintf("%s - %s", shortClock(start), shortClock(end)))
	}
	return out
}

// DayLabel is the QuickAvailabilityIndex key for a calendar day.
func DayLabel(key models.DayKey) string {
	return time.Date(key.Year, key.Month, key.Day, 0, 0, 0, 0, time.UTC).Format(dayLabelLayout)
}

// shortClock renders "H:mm" with an unpadded 24-hour hour.
func shortClock(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// ButtonLabel renders a slot clock as "h:mm AM".
func ButtonLabel(minutes int) string {
	return time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("3:04 PM")
}
