package calendar

import (
	"context"
	"encoding/json"
	"sync"

	availabilityRepo "availcal/database/repository/availability"
	sessionRepo "availcal/database/repository/session"
	"availcal/models"
)

// memorySessions mimics the redis store by round-tripping snapshots through JSON.
type memorySessions struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: map[string][]byte{}}
}

func (m *memorySessions) Get(_ context.Context, sessionID string) (*models.CalendarSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[sessionID]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	var snap models.CalendarSession
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *memorySessions) Put(_ context.Context, session *models.CalendarSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[session.SessionID] = raw
	return nil
}

func (m *memorySessions) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

type memoryRepo struct {
	mu     sync.Mutex
	docs   map[string]models.AvailabilityDocument
	writes int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{docs: map[string]models.AvailabilityDocument{}}
}

// seed stores ranges as if saved under window; a nil window mimics documents
// written before windows were stored.
func (r *memoryRepo) seed(ownerID string, window *models.SlotWindow, ranges ...models.AvailabilityRange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[ownerID] = models.AvailabilityDocument{OwnerID: ownerID, Window: window, Ranges: ranges}
}

func (r *memoryRepo) stored(ownerID string) []models.AvailabilityRange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[ownerID].Ranges
}

func (r *memoryRepo) GetDocument(_ context.Context, ownerID string) (*models.AvailabilityDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[ownerID]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *memoryRepo) ReplaceForOwner(_ context.Context, ownerID string, window models.SlotWindow, ranges []models.AvailabilityRange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.docs[ownerID] = models.AvailabilityDocument{OwnerID: ownerID, Window: &window, Ranges: ranges, Version: r.writes}
	return nil
}

func (r *memoryRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[ownerID]; !ok {
		return availabilityRepo.ErrAvailabilityNotFound
	}
	delete(r.docs, ownerID)
	return nil
}

func (r *memoryRepo) EnsureIndexes() error { return nil }
