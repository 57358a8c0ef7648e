package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

const sessionKeyPrefix = "session:"

type SessionStore struct {
	client goredis.Cmdable
}

func NewSessionStore(client goredis.Cmdable) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, principal domain.Principal, ttl time.Duration) error {
	data, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sessionID), string(data), ttl).Err(); err != nil {
		return fmt.Errorf("%w: save session: %w", domain.ErrPersistence, err)
	}

	return nil
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (*domain.Principal, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNoSession
	} else if err != nil {
		return nil, fmt.Errorf("%w: load session: %w", domain.ErrPersistence, err)
	}

	var principal domain.Principal
	if err := json.Unmarshal([]byte(data), &principal); err != nil {
		return nil, fmt.Errorf("%w: corrupt session record", domain.ErrNoSession)
	}

	return &principal, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %w", domain.ErrPersistence, err)
	}
	return nil
}
