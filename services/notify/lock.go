// File: services/notify/lock.go
package notify

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// sweepLockTTL bounds how long a crashed sweep can hold the lock.
const sweepLockTTL = 2 * time.Minute

// SweepLock serializes sweep invocations across instances. TryLock returns
// false when another sweep is in flight.
type SweepLock interface {
	TryLock(ctx context.Context) (bool, func(), error)
}

// RedisSweepLock implements SweepLock with a SET NX key.
type RedisSweepLock struct {
	Client *redis.Client
}

const sweepLockKey = "lock:notification-sweep"

func (l *RedisSweepLock) TryLock(ctx context.Context) (bool, func(), error) {
	ok, err := l.Client.SetNX(ctx, sweepLockKey, "1", sweepLockTTL).Result()
	if err != nil {
		return false, nil, err
	}
	if !ok {
		return false, nil, nil
	}
	release := func() {
		// Release is best effort; the TTL reclaims the lock regardless.
		l.Client.Del(context.Background(), sweepLockKey)
	}
	return true, release, nil
}
