package calendar

import (
	"time"

	"availcal/models"
	"availcal/services/availability"
)

// View renders the viewed month: a Sunday-first 6x7 grid plus the template's slot buttons.
func (s *Session) View() models.CalendarView {
	v := models.CalendarView{
		SessionID:     s.id,
		Year:          s.year,
		Month:         s.month,
		MonthName:     s.month.String(),
		Mode:          s.mode,
		ActiveDay:     s.activeDay,
		IsCurrent:     s.isCurrentMonth(),
		Saving:        s.saving,
		LastSaveError: s.lastSaveErr,
		LastSavedAt:   s.lastSavedAt,
		Theme:         s.settings.Theme,
		Unapplied:     len(s.unapplied),
	}
	v.CanGoBack = !v.IsCurrent

	week := 0
	col := int(time.Date(s.year, s.month, 1, 0, 0, 0, 0, s.settings.Location).Weekday())
	for day := 1; week < 6 && day <= daysIn(s.year, s.month); day++ {
		key := models.DayKey{Year: s.year, Month: s.month, Day: day}
		label := availability.DayLabel(key)
		v.Weeks[week][col] = models.DayCell{
			Day:             day,
			Label:           label,
			HasAvailability: s.tree.HasAvailability(key),
			Disabled:        !s.selectable(day),
			Active:          day == s.activeDay,
			Quick:           s.quick[label],
		}
		col++
		if col == 7 {
			week++
			col = 0
		}
	}
	for w := range v.Weeks {
		for c := range v.Weeks[w] {
			if v.Weeks[w][c].Day == 0 {
				v.Weeks[w][c].Disabled = true
			}
		}
	}

	for i, slot := range s.template {
		if !s.toggleable(i) {
			continue
		}
		v.Slots = append(v.Slots, models.SlotButton{
			Index:     i,
			Time:      slot.Time,
			Label:     availability.ButtonLabel(s.cfg.SlotStart(i)) + " - " + availability.ButtonLabel(s.cfg.SlotEnd(i)),
			Available: slot.Available,
		})
	}
	return v
}
