package calendar

import (
	"context"
	"sync"
	"time"

	availabilityRepo "availcal/database/repository/availability"
	sessionRepo "availcal/database/repository/session"
	"availcal/models"

	"go.uber.org/zap"
)

// CalendarService hosts calendar editing sessions.
type CalendarService interface {
	OpenSession(ctx context.Context, ownerID string, opts models.CalendarOptions) (*models.CalendarView, error)
	GetSession(ctx context.Context, sessionID, ownerID string) (*models.CalendarView, error)
	ShiftMonth(ctx context.Context, sessionID, ownerID string, delta int) (*models.CalendarView, error)
	JumpToCurrent(ctx context.Context, sessionID, ownerID string) (*models.CalendarView, error)
	SelectDay(ctx context.Context, sessionID, ownerID string, day int) (*models.CalendarView, error)
	ToggleMultiple(ctx context.Context, sessionID, ownerID string) (*models.CalendarView, error)
	ToggleTime(ctx context.Context, sessionID, ownerID string, index int) (*models.CalendarView, error)
	Save(ctx context.Context, sessionID, ownerID string) (*models.CalendarView, error)
	CompleteSave(ctx context.Context, sessionID string, saveErr error) error
	CloseSession(ctx context.Context, sessionID, ownerID string) error
	ResetAvailability(ctx context.Context, ownerID string) error
}

// DefaultCalendarService implements CalendarService.
type DefaultCalendarService struct {
	Repo     availabilityRepo.AvailabilityRepository
	Sessions sessionRepo.SessionStore
	Saver    AvailabilitySaver
	Defaults Settings
	Logger   *zap.Logger
	Now      func() time.Time
	NewID    func() string

	locks sync.Map // sessionID -> *sync.Mutex
}
