package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"availcal/models"
	"availcal/services/calendar"
	"availcal/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepo struct {
	err  error
	docs map[string]models.AvailabilityDocument
}

func (r *memoryRepo) GetDocument(_ context.Context, ownerID string) (*models.AvailabilityDocument, error) {
	doc, ok := r.docs[ownerID]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *memoryRepo) ReplaceForOwner(_ context.Context, ownerID string, window models.SlotWindow, ranges []models.AvailabilityRange) error {
	if r.err != nil {
		return r.err
	}
	r.docs[ownerID] = models.AvailabilityDocument{OwnerID: ownerID, Window: &window, Ranges: ranges}
	return nil
}

func (r *memoryRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	delete(r.docs, ownerID)
	return nil
}

func (r *memoryRepo) EnsureIndexes() error { return nil }

type completion struct {
	sessionID string
	err       error
}

// recordingCalendar only implements CompleteSave.
type recordingCalendar struct {
	calendar.CalendarService
	completed []completion
}

func (c *recordingCalendar) CompleteSave(_ context.Context, sessionID string, saveErr error) error {
	c.completed = append(c.completed, completion{sessionID: sessionID, err: saveErr})
	return nil
}

func newSaveHandler(repo *memoryRepo, final bool) (*SaveTaskHandler, *recordingCalendar) {
	cal := &recordingCalendar{}
	return &SaveTaskHandler{
		Repo:         repo,
		Calendar:     cal,
		Logger:       zap.NewNop(),
		FinalAttempt: func(context.Context) bool { return final },
	}, cal
}

func saveTask(t *testing.T) (*asynq.Task, models.SaveRequest) {
	t.Helper()
	req := models.SaveRequest{
		SessionID: "sess-1",
		OwnerID:   "owner-1",
		Window:    models.SlotWindow{StartTime: "8:00", EndTime: "20:00", Interval: 30, Timezone: "UTC"},
		Ranges: []models.AvailabilityRange{{
			Start: time.Date(2024, time.March, 20, 8, 30, 0, 0, time.UTC),
			End:   time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC),
		}},
	}
	task, _, err := tasks.NewSaveAvailabilityTask(req)
	require.NoError(t, err)
	return task, req
}

func TestSaveTaskStoresRangesAndWindow(t *testing.T) {
	repo := &memoryRepo{docs: map[string]models.AvailabilityDocument{}}
	h, cal := newSaveHandler(repo, false)
	task, req := saveTask(t)

	require.NoError(t, h.ProcessTask(context.Background(), task))

	doc := repo.docs["owner-1"]
	require.NotNil(t, doc.Window)
	assert.Equal(t, req.Window, *doc.Window)
	require.Len(t, doc.Ranges, 1)
	assert.True(t, doc.Ranges[0].Start.Equal(req.Ranges[0].Start))
	assert.Equal(t, []completion{{sessionID: "sess-1"}}, cal.completed)
}

func TestSaveTaskRetriesBeforeFinalAttempt(t *testing.T) {
	boom := errors.New("mongo unavailable")
	repo := &memoryRepo{err: boom, docs: map[string]models.AvailabilityDocument{}}
	h, cal := newSaveHandler(repo, false)
	task, _ := saveTask(t)

	err := h.ProcessTask(context.Background(), task)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
	assert.Empty(t, cal.completed)
}

func TestSaveTaskReportsFinalFailure(t *testing.T) {
	boom := errors.New("mongo unavailable")
	repo := &memoryRepo{err: boom, docs: map[string]models.AvailabilityDocument{}}
	h, cal := newSaveHandler(repo, true)
	task, _ := saveTask(t)

	err := h.ProcessTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	require.Len(t, cal.completed, 1)
	assert.Equal(t, "sess-1", cal.completed[0].sessionID)
	assert.Equal(t, boom, cal.completed[0].err)
	assert.Empty(t, repo.docs)
}

func TestSaveTaskSkipsBadPayload(t *testing.T) {
	repo := &memoryRepo{docs: map[string]models.AvailabilityDocument{}}
	h, cal := newSaveHandler(repo, false)

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeSaveAvailability, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, cal.completed)
	assert.Empty(t, repo.docs)
}

func TestFinalAttemptWithoutTaskMetadata(t *testing.T) {
	assert.True(t, finalAttempt(context.Background()))
}
