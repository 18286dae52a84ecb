package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound indica que no hay código vigente para esa identidad.
var ErrCodeNotFound = errors.New("verification code not found")

// VerificationCodeStore guarda códigos de verificación con expiración.
// Cualquier error distinto de ErrCodeNotFound es un fallo de infraestructura
// y debe propagarse tal cual, nunca tratarse como código ausente.
type VerificationCodeStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type memoryCodeEntry struct {
	code      string
	expiresAt time.Time
}

type memoryVerificationStore struct {
	mu    sync.Mutex
	items map[string]memoryCodeEntry
}

func NewMemoryVerificationStore() VerificationCodeStore {
	return &memoryVerificationStore{
		items: make(map[string]memoryCodeEntry),
	}
}

func (s *memoryVerificationStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[email] = memoryCodeEntry{
		code:      code,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *memoryVerificationStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[email]
	if !ok {
		return "", ErrCodeNotFound
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, email)
		return "", ErrCodeNotFound
	}
	return entry.code, nil
}

func (s *memoryVerificationStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, email)
	return nil
}

type redisKVClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisVerificationStore struct {
	client redisKVClient
	prefix string
}

// NewRedisVerificationStore crea un store sobre redis con claves
// verification:{email}.
func NewRedisVerificationStore(client *redis.Client) VerificationCodeStore {
	if client == nil {
		return nil
	}
	return &redisVerificationStore{
		client: client,
		prefix: "verification:",
	}
}

func (s *redisVerificationStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	if strings.TrimSpace(email) == "" {
		return ErrCodeNotFound
	}
	return s.client.Set(ctx, s.prefix+email, code, ttl).Err()
}

func (s *redisVerificationStore) Get(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", ErrCodeNotFound
	}
	code, err := s.client.Get(ctx, s.prefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *redisVerificationStore) Delete(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+email).Err()
}
