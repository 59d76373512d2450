// File: services/otp/verified.go
package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// VerifiedTTL is the grace window after successful verification during which
// the phone is treated as verified without re-checking a code.
const VerifiedTTL = 15 * time.Minute

// VerifiedStore tracks which phones hold an active post-verification grace
// window. Persisted (Redis) so the grace survives process restarts and is
// shared across instances.
type VerifiedStore interface {
	MarkVerified(ctx context.Context, phone string) error
	IsVerified(ctx context.Context, phone string) (bool, error)
	ClearVerified(ctx context.Context, phone string) error
}

// RedisVerifiedStore is the production VerifiedStore.
type RedisVerifiedStore struct {
	Client *redis.Client
}

func verifiedKey(phone string) string {
	return "verified:" + phone
}

func (s *RedisVerifiedStore) MarkVerified(ctx context.Context, phone string) error {
	if err := s.Client.Set(ctx, verifiedKey(phone), "1", VerifiedTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache verified phone: %w", err)
	}
	return nil
}

func (s *RedisVerifiedStore) IsVerified(ctx context.Context, phone string) (bool, error) {
	_, err := s.Client.Get(ctx, verifiedKey(phone)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read verified phone: %w", err)
	}
	return true, nil
}

func (s *RedisVerifiedStore) ClearVerified(ctx context.Context, phone string) error {
	return s.Client.Del(ctx, verifiedKey(phone)).Err()
}
