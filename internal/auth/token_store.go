package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "pulsefit-session||"
)

var ErrTokenNotFound = errors.New("token not found")

var _ TokenStore = (*RedisTokenStore)(nil)
var _ TokenStore = (*MemoryTokenStore)(nil)

// TokenStore persists issued bearer tokens for the dev server's auth
// endpoints.
type TokenStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID) error
	UserFor(ctx context.Context, token string) (uuid.UUID, error)
	Drop(ctx context.Context, token string) error
}

type RedisTokenStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisTokenStore(ttl time.Duration, redisClient *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, userID uuid.UUID) error {
	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Set(ctx, sessionKey, userID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) UserFor(ctx context.Context, token string) (uuid.UUID, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := s.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrTokenNotFound
		}
		return uuid.Nil, fmt.Errorf("get token: %w", err)
	}

	userID, err := uuid.Parse(cmd.Val())
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse stored user id: %w", err)
	}
	return userID, nil
}

func (s *RedisTokenStore) Drop(ctx context.Context, token string) error {
	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("drop token: %w", err)
	}
	log.Debugf("token store: dropped session token")
	return nil
}

type memoryToken struct {
	userID    uuid.UUID
	expiresAt time.Time
}

type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
	ttl    time.Duration

	NowFunc func() time.Time
}

func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens:  make(map[string]memoryToken),
		ttl:     ttl,
		NowFunc: time.Now,
	}
}

func (s *MemoryTokenStore) Save(_ context.Context, token string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryToken{
		userID:    userID,
		expiresAt: s.NowFunc().Add(s.ttl),
	}
	return nil
}

func (s *MemoryTokenStore) UserFor(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, ErrTokenNotFound
	}
	if s.NowFunc().After(entry.expiresAt) {
		delete(s.tokens, token)
		return uuid.Nil, ErrTokenNotFound
	}
	return entry.userID, nil
}

func (s *MemoryTokenStore) Drop(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
