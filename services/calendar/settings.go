package calendar

import (
	"fmt"
	"time"

	"availcal/config"
	"availcal/models"
	"availcal/services/availability"
)

// SettingsFromConfig validates the calendar defaults. An out-of-range interval
// or malformed clock is rejected here, before any session is opened.
func SettingsFromConfig(cfg config.Config) (Settings, error) {
	if _, err := availability.NewSlotConfig(cfg.CalendarStartTime, cfg.CalendarEndTime, cfg.CalendarInterval); err != nil {
		return Settings{}, fmt.Errorf("calendar config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.CalendarTimezone)
	if err != nil {
		return Settings{}, fmt.Errorf("calendar config: timezone %q: %w", cfg.CalendarTimezone, err)
	}
	return Settings{
		StartTime: cfg.CalendarStartTime,
		EndTime:   cfg.CalendarEndTime,
		Interval:  cfg.CalendarInterval,
		Location:  loc,
		Strict:    cfg.CalendarStrictDecode,
		Theme:     models.DefaultCalendarTheme(),
	}, nil
}

// SessionTTL is how long an idle calendar session is kept.
func SessionTTL(cfg config.Config) time.Duration {
	if cfg.SessionTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(cfg.SessionTTLMinutes) * time.Minute
}
