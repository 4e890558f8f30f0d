package calendar

import (
	"context"
	"fmt"

	availabilityRepo "availcal/database/repository/availability"
	"availcal/models"
	"availcal/services/tasks"

	"github.com/hibiken/asynq"
)

// SaveStatus tells the service whether a save finished or is still pending.
type SaveStatus int

const (
	SaveCompleted SaveStatus = iota
	SaveQueued
)

// AvailabilitySaver receives the flat range list on save. A queued save must
// later be reported through CalendarService.CompleteSave.
type AvailabilitySaver interface {
	SaveAvailability(ctx context.Context, req models.SaveRequest) (SaveStatus, error)
}

// SaverFunc adapts a plain callback to AvailabilitySaver.
type SaverFunc func(ctx context.Context, req models.SaveRequest) (SaveStatus, error)

func (f SaverFunc) SaveAvailability(ctx context.Context, req models.SaveRequest) (SaveStatus, error) {
	return f(ctx, req)
}

// RepositorySaver writes synchronously to the availability repository.
type RepositorySaver struct {
	Repo availabilityRepo.AvailabilityRepository
}

func (s *RepositorySaver) SaveAvailability(ctx context.Context, req models.SaveRequest) (SaveStatus, error) {
	if err := s.Repo.ReplaceForOwner(ctx, req.OwnerID, req.Window, req.Ranges); err != nil {
		return SaveCompleted, fmt.Errorf("failed to persist availability: %w", err)
	}
	return SaveCompleted, nil
}

// QueueSaver hands the save to the asynq worker.
type QueueSaver struct {
	Client *asynq.Client
}

func (s *QueueSaver) SaveAvailability(ctx context.Context, req models.SaveRequest) (SaveStatus, error) {
	task, opts, err := tasks.NewSaveAvailabilityTask(req)
	if err != nil {
		return SaveCompleted, fmt.Errorf("failed to build save task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return SaveCompleted, fmt.Errorf("failed to enqueue save task: %w", err)
	}
	return SaveQueued, nil
}
