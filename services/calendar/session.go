package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"availcal/models"
	"availcal/services/availability"
)

var (
	ErrPastMonth      = errors.New("cannot navigate before the current month")
	ErrDayUnavailable = errors.New("day cannot be selected")
	ErrSlotOutOfRange = errors.New("slot cannot be toggled")
	ErrSaveInFlight   = errors.New("a save is already in progress")
	ErrInvalidZone    = errors.New("unknown timezone")
	ErrWindowConflict = errors.New("calendar window differs from the stored availability")
)

// Settings is the resolved configuration of one calendar.
type Settings struct {
	StartTime string
	EndTime   string
	Interval  int
	Location  *time.Location
	Strict    bool
	Theme     models.CalendarTheme
}

// Window is the slot configuration ranges edited under these settings are built with.
func (s Settings) Window() models.SlotWindow {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return models.SlotWindow{StartTime: s.StartTime, EndTime: s.EndTime, Interval: s.Interval, Timezone: loc.String()}
}

// Session is the calendar controller: it owns the availability tree of one
// editing session and applies user interactions to it. It is not safe for
// concurrent use; callers serialize access per session.
type Session struct {
	id       string
	ownerID  string
	settings Settings
	cfg      availability.SlotConfig
	now      func() time.Time

	mode      models.CalendarMode
	year      int
	month     time.Month
	activeDay int
	template  models.DaySlots
	tree      *availability.Tree
	quick     models.QuickAvailabilityIndex
	// unapplied holds stored ranges lenient decoding skipped; they are saved back verbatim.
	unapplied []models.AvailabilityRange

	saving      bool
	lastSaveErr string
	lastSavedAt *time.Time
	createdAt   time.Time
}

// NewSession decodes the owner's persisted ranges and opens the current month.
// In lenient mode the ranges that could not be applied are returned.
func NewSession(id, ownerID string, settings Settings, ranges []models.AvailabilityRange, now func() time.Time) (*Session, []availability.SkippedRange, error) {
	if now == nil {
		now = time.Now
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	cfg, err := availability.NewSlotConfig(settings.StartTime, settings.EndTime, settings.Interval)
	if err != nil {
		return nil, nil, err
	}
	res, err := availability.Decode(cfg, ranges, availability.DecodeOptions{Location: settings.Location, Strict: settings.Strict})
	if err != nil {
		return nil, nil, err
	}

	s := &Session{
		id:        id,
		ownerID:   ownerID,
		settings:  settings,
		cfg:       cfg,
		now:       now,
		tree:      res.Tree,
		createdAt: now(),
	}
	for _, sk := range res.Skipped {
		s.unapplied = append(s.unapplied, sk.Range)
	}
	s.quick = availability.BuildQuickIndex(ranges, now(), settings.Location)
	s.JumpToCurrent()
	return s, res.Skipped, nil
}

// FromSnapshot restores a session persisted with Snapshot.
func FromSnapshot(snap *models.CalendarSession, now func() time.Time) (*Session, error) {
	if now == nil {
		now = time.Now
	}
	loc, err := time.LoadLocation(snap.Timezone)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", snap.SessionID, err)
	}
	cfg, err := availability.NewSlotConfig(snap.StartTime, snap.EndTime, snap.Interval)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", snap.SessionID, err)
	}
	tree, err := availability.TreeFromSnapshot(cfg, snap.Days)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", snap.SessionID, err)
	}
	template := snap.Template
	if len(template) != cfg.SlotCount() {
		template = availability.DefaultSlots(cfg)
	}
	quick := snap.Quick
	if quick == nil {
		quick = models.QuickAvailabilityIndex{}
	}

	return &Session{
		id:      snap.SessionID,
		ownerID: snap.OwnerID,
		settings: Settings{
			StartTime: snap.StartTime,
			EndTime:   snap.EndTime,
			Interval:  snap.Interval,
			Location:  loc,
			Strict:    snap.StrictDecode,
			Theme:     snap.Theme,
		},
		cfg:         cfg,
		now:         now,
		mode:        snap.Mode,
		year:        snap.Year,
		month:       snap.Month,
		activeDay:   snap.ActiveDay,
		template:    template.Clone(),
		tree:        tree,
		quick:       quick,
		unapplied:   snap.Unapplied,
		saving:      snap.Saving,
		lastSaveErr: snap.LastSaveError,
		lastSavedAt: snap.LastSavedAt,
		createdAt:   snap.CreatedAt,
	}, nil
}

// Snapshot exports the session state for storage.
func (s *Session) Snapshot() *models.CalendarSession {
	return &models.CalendarSession{
		SessionID:     s.id,
		OwnerID:       s.ownerID,
		StartTime:     s.settings.StartTime,
		EndTime:       s.settings.EndTime,
		Interval:      s.settings.Interval,
		Timezone:      s.settings.Location.String(),
		StrictDecode:  s.settings.Strict,
		Theme:         s.settings.Theme,
		Mode:          s.mode,
		Year:          s.year,
		Month:         s.month,
		ActiveDay:     s.activeDay,
		Template:      s.template.Clone(),
		Days:          s.tree.Snapshot(),
		Quick:         s.quick,
		Unapplied:     s.unapplied,
		Saving:        s.saving,
		LastSaveError: s.lastSaveErr,
		LastSavedAt:   s.lastSavedAt,
		CreatedAt:     s.createdAt,
	}
}

func (s *Session) ID() string                           { return s.id }
func (s *Session) OwnerID() string                      { return s.ownerID }
func (s *Session) Mode() models.CalendarMode            { return s.mode }
func (s *Session) ActiveDay() int                       { return s.activeDay }
func (s *Session) Template() models.DaySlots            { return s.template.Clone() }
func (s *Session) Quick() models.QuickAvailabilityIndex { return s.quick }
func (s *Session) Saving() bool                         { return s.saving }
func (s *Session) Tree() *availability.Tree             { return s.tree.Clone() }

func (s *Session) Window() models.SlotWindow { return s.settings.Window() }

// Unapplied returns the stored ranges the tree could not represent.
func (s *Session) Unapplied() []models.AvailabilityRange {
	return append([]models.AvailabilityRange(nil), s.unapplied...)
}

// Ranges is the flat projection of the current edits.
func (s *Session) Ranges() []models.AvailabilityRange {
	return availability.Encode(s.tree, s.settings.Location)
}

// saveRanges is what a save persists: the edits plus the unapplied ranges, by start.
func (s *Session) saveRanges() []models.AvailabilityRange {
	out := s.Ranges()
	if len(s.unapplied) == 0 {
		return out
	}
	out = append(out, s.unapplied...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// ShiftMonth moves the view by delta months. Navigation resets to browsing.
func (s *Session) ShiftMonth(delta int) error {
	cy, cm := s.currentMonth()
	target := monthIndex(s.year, s.month) + delta
	if target < monthIndex(cy, cm) {
		return ErrPastMonth
	}
	s.year, s.month = target/12, time.Month(target%12+1)
	s.resetView()
	return nil
}

// JumpToCurrent shows the current month and resets to browsing.
func (s *Session) JumpToCurrent() {
	s.year, s.month = s.currentMonth()
	s.resetView()
}

// SelectDay opens a day for editing, or in multiple mode merges the template into it.
func (s *Session) SelectDay(day int) error {
	if !s.selectable(day) {
		return fmt.Errorf("%w: %d %s %d", ErrDayUnavailable, day, s.month, s.year)
	}
	key := models.DayKey{Year: s.year, Month: s.month, Day: day}

	if s.mode == models.ModeEditingMultiple {
		merged := s.template
		if existing, ok := s.tree.Day(key); ok {
			var err error
			if merged, err = availability.Merge(existing, s.template); err != nil {
				return err
			}
		}
		if err := s.tree.Set(key, merged); err != nil {
			return err
		}
		s.rebuildQuick()
		return nil
	}

	s.template = s.tree.DayOrDefault(key)
	s.activeDay = day
	s.mode = models.ModeEditingSingleDay
	return nil
}

// ToggleMultiple enters or leaves multiple-day mode. The template is kept so
// the current selection can be broadcast.
func (s *Session) ToggleMultiple() {
	s.activeDay = 0
	if s.mode == models.ModeEditingMultiple {
		s.mode = models.ModeBrowsing
		return
	}
	s.mode = models.ModeEditingMultiple
}

// ToggleTime flips template slot i and writes it through to the active day.
func (s *Session) ToggleTime(i int) error {
	if i < 0 || i >= len(s.template) || !s.toggleable(i) {
		return fmt.Errorf("%w: index %d", ErrSlotOutOfRange, i)
	}
	s.template[i].Available = !s.template[i].Available
	if s.activeDay == 0 {
		return nil
	}
	key := models.DayKey{Year: s.year, Month: s.month, Day: s.activeDay}
	if !s.template.HasAvailability() {
		s.tree.Delete(key)
	} else if err := s.tree.Set(key, s.template); err != nil {
		return err
	}
	s.rebuildQuick()
	return nil
}

// BeginSave marks the session as saving and returns the ranges to persist.
func (s *Session) BeginSave() ([]models.AvailabilityRange, error) {
	if s.saving {
		return nil, ErrSaveInFlight
	}
	s.saving = true
	s.lastSaveErr = ""
	return s.saveRanges(), nil
}

// CompleteSave clears the saving flag and records the outcome.
func (s *Session) CompleteSave(saveErr error) {
	s.saving = false
	if saveErr != nil {
		s.lastSaveErr = saveErr.Error()
		return
	}
	at := s.now()
	s.lastSavedAt = &at
	s.lastSaveErr = ""
}

func (s *Session) resetView() {
	s.activeDay = 0
	s.template = availability.DefaultSlots(s.cfg)
	s.mode = models.ModeBrowsing
}

func (s *Session) rebuildQuick() {
	s.quick = availability.BuildQuickIndex(s.saveRanges(), s.now(), s.settings.Location)
}

func (s *Session) today() time.Time { return s.now().In(s.settings.Location) }

func (s *Session) currentMonth() (int, time.Month) {
	y, m, _ := s.today().Date()
	return y, m
}

func (s *Session) isCurrentMonth() bool {
	y, m := s.currentMonth()
	return s.year == y && s.month == m
}

// selectable rejects padding, past days and today.
func (s *Session) selectable(day int) bool {
	if day < 1 || day > daysIn(s.year, s.month) {
		return false
	}
	cy, cm := s.currentMonth()
	switch cur, view := monthIndex(cy, cm), monthIndex(s.year, s.month); {
	case view < cur:
		return false
	case view == cur:
		return day > s.today().Day()
	}
	return true
}

// toggleable excludes the zero-width closing slot.
func (s *Session) toggleable(i int) bool {
	return s.cfg.SlotStart(i) < s.cfg.SlotEnd(i)
}

func monthIndex(year int, month time.Month) int { return year*12 + int(month) - 1 }

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
