package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zela/models"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound covers both expired/unknown sessions and sessions
// owned by another customer; the two are indistinguishable to callers.
var ErrSessionNotFound = errors.New("booking session not found")

const sessionTTL = 30 * time.Minute

// SessionStore persists in-progress booking sessions.
type SessionStore interface {
	Create(ctx context.Context, sess *models.BookingSession) error
	// Get loads a session and enforces customer ownership.
	Get(ctx context.Context, sessionID, customerID string) (*models.BookingSession, error)
	Save(ctx context.Context, sess *models.BookingSession) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in Redis with a sliding TTL, so an
// abandoned wizard cleans itself up.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: sessionTTL}
}

func sessionKey(sessionID string) string {
	return "booking:sess:" + sessionID
}

func (s *RedisSessionStore) Create(ctx context.Context, sess *models.BookingSession) error {
	return s.write(ctx, sess)
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.BookingSession) error {
	return s.write(ctx, sess)
}

func (s *RedisSessionStore) write(ctx context.Context, sess *models.BookingSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID, customerID string) (*models.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}

	var sess models.BookingSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode booking session: %w", err)
	}
	if sess.CustomerID != customerID {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}
