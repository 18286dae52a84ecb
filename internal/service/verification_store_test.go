package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryVerificationStore_Basics(t *testing.T) {
	store := NewMemoryVerificationStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "a@x.com"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}

	if err := store.Put(ctx, "a@x.com", "1234", time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}
	code, err := store.Get(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if code != "1234" {
		t.Fatalf("expected code 1234, got %s", code)
	}

	// Un nuevo Put para la misma identidad pisa el código anterior.
	if err := store.Put(ctx, "a@x.com", "5678", time.Minute); err != nil {
		t.Fatalf("put overwrite: %v", err)
	}
	code, err = store.Get(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if code != "5678" {
		t.Fatalf("expected code 5678, got %s", code)
	}

	if err := store.Delete(ctx, "a@x.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "a@x.com"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound after delete, got %v", err)
	}
}

func TestMemoryVerificationStore_Expiry(t *testing.T) {
	store := NewMemoryVerificationStore()
	ctx := context.Background()

	if err := store.Put(ctx, "a@x.com", "1234", -time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Get(ctx, "a@x.com"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected expired entry to be absent, got %v", err)
	}
}

type mockRedisKVClient struct {
	lastSetKey string
	lastSetVal interface{}
	lastSetTTL time.Duration
	lastGetKey string
	lastDel    []string

	setErr error
	getErr error
	getVal string
	delErr error
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetVal = value
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKVClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.lastGetKey = key
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	cmd.SetVal(m.getVal)
	return cmd
}

func (m *mockRedisKVClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastDel = keys
	cmd := redis.NewIntCmd(ctx)
	if m.delErr != nil {
		cmd.SetErr(m.delErr)
		return cmd
	}
	cmd.SetVal(1)
	return cmd
}

func TestRedisVerificationStore_KeysAndTTL(t *testing.T) {
	client := &mockRedisKVClient{getVal: "1234"}
	store := &redisVerificationStore{client: client, prefix: "verification:"}
	ctx := context.Background()

	if err := store.Put(ctx, "a@x.com", "1234", 300*time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}
	if client.lastSetKey != "verification:a@x.com" {
		t.Fatalf("unexpected set key: %s", client.lastSetKey)
	}
	if client.lastSetTTL != 300*time.Second {
		t.Fatalf("unexpected ttl: %v", client.lastSetTTL)
	}

	code, err := store.Get(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if code != "1234" {
		t.Fatalf("expected code 1234, got %s", code)
	}
	if client.lastGetKey != "verification:a@x.com" {
		t.Fatalf("unexpected get key: %s", client.lastGetKey)
	}

	if err := store.Delete(ctx, "a@x.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(client.lastDel) != 1 || client.lastDel[0] != "verification:a@x.com" {
		t.Fatalf("unexpected del keys: %v", client.lastDel)
	}
}

func TestRedisVerificationStore_NilIsNotFound(t *testing.T) {
	client := &mockRedisKVClient{getErr: redis.Nil}
	store := &redisVerificationStore{client: client, prefix: "verification:"}

	_, err := store.Get(context.Background(), "a@x.com")
	if !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestRedisVerificationStore_InfraErrorPropagates(t *testing.T) {
	infraErr := errors.New("connection refused")
	client := &mockRedisKVClient{getErr: infraErr}
	store := &redisVerificationStore{client: client, prefix: "verification:"}

	_, err := store.Get(context.Background(), "a@x.com")
	if errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("infra error must not be reported as code absent")
	}
	if !errors.Is(err, infraErr) {
		t.Fatalf("expected infra error to propagate, got %v", err)
	}
}
