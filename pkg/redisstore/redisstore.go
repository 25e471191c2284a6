package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store adapts a Redis client to fiber.Storage so the session
// middleware can keep sessions out of process memory.
type Store struct {
	client *redis.Client
	ctx    context.Context
}

// Config holds Redis connection details.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New connects to Redis and returns a session storage backed by it.
func New(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	return &Store{client: client, ctx: ctx}, nil
}

// Get returns the value for the key, or nil when the key is absent.
func (s *Store) Get(key string) ([]byte, error) {
	val, err := s.client.Get(s.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores the value under the key with the given expiry. A zero
// expiry means the key does not expire.
func (s *Store) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(s.ctx, key, val, exp).Err()
}

// Delete removes the key.
func (s *Store) Delete(key string) error {
	return s.client.Del(s.ctx, key).Err()
}

// Reset removes every key in the selected database.
func (s *Store) Reset() error {
	return s.client.FlushDB(s.ctx).Err()
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
