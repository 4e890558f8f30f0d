// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"errors"
	"time"

	"availcal/models"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when a session is missing or expired.
var ErrSessionNotFound = errors.New("calendar session not found or expired")

// SessionStore keeps calendar session snapshots between requests.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.CalendarSession, error)
	Put(ctx context.Context, session *models.CalendarSession) error
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore stores snapshots as JSON with a sliding TTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}
