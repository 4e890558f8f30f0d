package models

import (
	"fmt"
	"time"
)

// TimeSlot is one discrete interval of a day starting at Time ("HH:mm").
type TimeSlot struct {
	Time      string `bson:"time" json:"time"`
	Available bool   `bson:"available" json:"available"`
}

// DaySlots is the ordered slot sequence for a single day.
type DaySlots []TimeSlot

// Clone returns an independently allocated copy.
func (d DaySlots) Clone() DaySlots {
	if d == nil {
		return nil
	}
	out := make(DaySlots, len(d))
	copy(out, d)
	return out
}

// HasAvailability reports whether any slot is available.
func (d DaySlots) HasAvailability() bool {
	for _, s := range d {
		if s.Available {
			return true
		}
	}
	return false
}

// DayKey identifies a calendar day.
type DayKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// DayKeyOf returns the calendar day of t in its own location.
func DayKeyOf(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

func (k DayKey) MonthName() string { return k.Month.String() }

// Before orders keys chronologically.
func (k DayKey) Before(o DayKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	if k.Month != o.Month {
		return k.Month < o.Month
	}
	return k.Day < o.Day
}

func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// AvailabilityRange is an absolute contiguous interval of availability.
type AvailabilityRange struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// QuickAvailabilityIndex maps "January 2, 2006" labels to "H:mm - H:mm" strings.
type QuickAvailabilityIndex map[string][]string

// DayAvailability is one stored day of an availability tree.
type DayAvailability struct {
	Day   DayKey   `bson:"day" json:"day"`
	Slots DaySlots `bson:"slots" json:"slots"`
}
