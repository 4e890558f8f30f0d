package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	sessionRepo "availcal/database/repository/session"
	"availcal/models"
	"availcal/services/availability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultCalendarService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCalendarService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultCalendarService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New().String()
}

// resolve layers the service defaults, the window the owner's ranges were
// stored with, and the per-session options. Once ranges are stored, options may
// not change the window they were built with.
func (s *DefaultCalendarService) resolve(opts models.CalendarOptions, doc *models.AvailabilityDocument) (Settings, error) {
	settings := s.Defaults
	if doc != nil && doc.Window != nil {
		var err error
		if settings, err = withWindow(settings, *doc.Window); err != nil {
			return Settings{}, fmt.Errorf("stored window: %w", err)
		}
	}
	settings, err := withWindow(settings, models.SlotWindow{
		StartTime: opts.StartTime,
		EndTime:   opts.EndTime,
		Interval:  opts.Interval,
		Timezone:  opts.Timezone,
	})
	if err != nil {
		return Settings{}, err
	}
	if opts.Theme != nil {
		settings.Theme = *opts.Theme
	}

	if doc != nil && len(doc.Ranges) > 0 {
		stored := s.Defaults.Window()
		if doc.Window != nil {
			stored = *doc.Window
		}
		if !sameWindow(stored, settings.Window()) {
			return Settings{}, fmt.Errorf("%w: stored %s-%s/%d %s", ErrWindowConflict,
				stored.StartTime, stored.EndTime, stored.Interval, stored.Timezone)
		}
	}
	return settings, nil
}

// withWindow overrides the non-empty fields of w.
func withWindow(settings Settings, w models.SlotWindow) (Settings, error) {
	if w.StartTime != "" {
		settings.StartTime = w.StartTime
	}
	if w.EndTime != "" {
		settings.EndTime = w.EndTime
	}
	if w.Interval != 0 {
		settings.Interval = w.Interval
	}
	if w.Timezone != "" {
		loc, err := time.LoadLocation(w.Timezone)
		if err != nil {
			return Settings{}, fmt.Errorf("%w %q: %v", ErrInvalidZone, w.Timezone, err)
		}
		settings.Location = loc
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return settings, nil
}

// sameWindow compares windows by their parsed slot grid, so "8:00" equals "08:00".
func sameWindow(a, b models.SlotWindow) bool {
	ca, errA := availability.NewSlotConfig(a.StartTime, a.EndTime, a.Interval)
	cb, errB := availability.NewSlotConfig(b.StartTime, b.EndTime, b.Interval)
	if errA != nil || errB != nil || ca != cb {
		return false
	}
	return zoneName(a.Timezone) == zoneName(b.Timezone)
}

func zoneName(tz string) string {
	if tz == "" {
		return time.UTC.String()
	}
	return tz
}

func (s *DefaultCalendarService) OpenSession(ctx context.Context, ownerID string, opts models.CalendarOptions) (*models.CalendarView, error) {
	doc, err := s.Repo.GetDocument(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	settings, err := s.resolve(opts, doc)
	if err != nil {
		return nil, err
	}
	var ranges []models.AvailabilityRange
	if doc != nil {
		ranges = doc.Ranges
	}

	session, skipped, err := NewSession(s.newID(), ownerID, settings, ranges, s.now)
	if err != nil {
		return nil, err
	}
	for _, sk := range skipped {
		s.logger().Warn("stored availability range kept unapplied",
			zap.String("ownerID", ownerID),
			zap.Int("index", sk.Index),
			zap.Time("start", sk.Range.Start),
			zap.Time("end", sk.Range.End),
			zap.Error(sk.Err),
		)
	}

	if err := s.Sessions.Put(ctx, session.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	sessionsOpened.Inc()
	skippedRanges.Add(float64(len(skipped)))
	s.logger().Debug("calendar session opened", zap.String("sessionID", session.ID()), zap.String("ownerID", ownerID))
	view := session.View()
	return &view, nil
}

func (s *DefaultCalendarService) GetSession(ctx context.Context, sessionID, ownerID string) (*models.CalendarView, error) {
	return s.mutate(ctx, "get", sessionID, ownerID, func(*Session) error { return nil })
}

func (s *DefaultCalendarService) ShiftMonth(ctx context.Context, sessionID, ownerID string, delta int) (*models.CalendarView, error) {
	return s.mutate(ctx, "shift_month", sessionID, ownerID, func(sess *Session) error { return sess.ShiftMonth(delta) })
}

func (s *DefaultCalendarService) JumpToCurrent(ctx context.Context, sessionID, ownerID string) (*models.CalendarView, error) {
	return s.mutate(ctx, "jump_to_current", sessionID, ownerID, func(sess *Session) error {
		sess.JumpToCurrent()
		return nil
	})
}

func (s *DefaultCalendarService) SelectDay(ctx context.Context, sessionID, ownerID string, day int) (*models.CalendarView, error) {
	return s.mutate(ctx, "select_day", sessionID, ownerID, func(sess *Session) error { return sess.SelectDay(day) })
}

func (s *DefaultCalendarService) ToggleMultiple(ctx context.Context, sessionID, ownerID string) (*models.CalendarView, error) {
	return s.mutate(ctx, "toggle_multiple", sessionID, ownerID, func(sess *Session) error {
		sess.ToggleMultiple()
		return nil
	})
}

func (s *DefaultCalendarService) ToggleTime(ctx context.Context, sessionID, ownerID string, index int) (*models.CalendarView, error) {
	return s.mutate(ctx, "toggle_time", sessionID, ownerID, func(sess *Session) error { return sess.ToggleTime(index) })
}

// Save encodes the session and hands the ranges to the saver. The session stays
// in the saving state until the saver's outcome is known.
func (s *DefaultCalendarService) Save(ctx context.Context, sessionID, ownerID string) (*models.CalendarView, error) {
	var req models.SaveRequest
	view, err := s.mutate(ctx, "save", sessionID, ownerID, func(sess *Session) error {
		ranges, err := sess.BeginSave()
		if err != nil {
			return err
		}
		req = models.SaveRequest{SessionID: sessionID, OwnerID: ownerID, Window: sess.Window(), Ranges: ranges}
		return nil
	})
	if err != nil {
		return nil, err
	}

	status, saveErr := s.Saver.SaveAvailability(ctx, req)
	if saveErr == nil && status == SaveQueued {
		saves.WithLabelValues("queued").Inc()
		s.logger().Info("availability save queued", zap.String("sessionID", sessionID), zap.Int("ranges", len(req.Ranges)))
		return view, nil
	}
	if err := s.CompleteSave(ctx, sessionID, saveErr); err != nil {
		return nil, err
	}
	if saveErr != nil {
		return nil, saveErr
	}
	return s.GetSession(ctx, sessionID, ownerID)
}

// CompleteSave records the outcome of a save started by Save.
func (s *DefaultCalendarService) CompleteSave(ctx context.Context, sessionID string, saveErr error) error {
	unlock := s.lock(sessionID)
	defer unlock()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	sess, err := FromSnapshot(snap, s.now)
	if err != nil {
		return err
	}
	sess.CompleteSave(saveErr)
	if saveErr != nil {
		saves.WithLabelValues("failed").Inc()
		s.logger().Error("availability save failed", zap.String("sessionID", sessionID), zap.Error(saveErr))
	} else {
		saves.WithLabelValues("completed").Inc()
		s.logger().Info("availability saved", zap.String("sessionID", sessionID), zap.String("ownerID", sess.OwnerID()))
	}
	return s.Sessions.Put(ctx, sess.Snapshot())
}

func (s *DefaultCalendarService) CloseSession(ctx context.Context, sessionID, ownerID string) error {
	unlock := s.lock(sessionID)
	defer func() {
		unlock()
		s.locks.Delete(sessionID)
	}()

	snap, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if snap.OwnerID != ownerID {
		return sessionRepo.ErrSessionNotFound
	}
	return s.Sessions.Delete(ctx, sessionID)
}

// mutate loads a session owned by ownerID, applies fn and stores the result.
// Nothing is stored when fn fails.
func (s *DefaultCalendarService) mutate(ctx context.Context, op, sessionID, ownerID string, fn func(*Session) error) (view *models.CalendarView, err error) {
	unlock := s.lock(sessionID)
	defer unlock()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		operations.WithLabelValues(op, result).Inc()
	}()

	snap, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snap.OwnerID != ownerID {
		return nil, sessionRepo.ErrSessionNotFound
	}
	sess, err := FromSnapshot(snap, s.now)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.Sessions.Put(ctx, sess.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	v := sess.View()
	return &v, nil
}

// ResetAvailability deletes everything stored for the owner. Sessions that are
// already open keep their edits and may save them again.
func (s *DefaultCalendarService) ResetAvailability(ctx context.Context, ownerID string) error {
	if err := s.Repo.DeleteByOwner(ctx, ownerID); err != nil {
		return err
	}
	s.logger().Info("availability reset", zap.String("ownerID", ownerID))
	return nil
}

// load fetches a snapshot and forgets the session's lock once it has expired.
func (s *DefaultCalendarService) load(ctx context.Context, sessionID string) (*models.CalendarSession, error) {
	snap, err := s.Sessions.Get(ctx, sessionID)
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		s.locks.Delete(sessionID)
	}
	return snap, err
}

func (s *DefaultCalendarService) lock(sessionID string) func() {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
