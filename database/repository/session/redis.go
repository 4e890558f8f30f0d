// File: database/repository/session/redis.go
package sessionRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"availcal/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "calendar:session:"

func sessionKey(id string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, id)
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*models.CalendarSession, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	var session models.CalendarSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (s *redisSessionStore) Put(ctx context.Context, session *models.CalendarSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.SessionID, err)
	}
	return s.client.Set(ctx, sessionKey(session.SessionID), data, s.ttl).Err()
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	n, err := s.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
