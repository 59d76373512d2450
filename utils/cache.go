// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/sripavantejb/GuideXpert-Backend/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// VerifiedCacheClient holds the post-OTP "verified phone" grace entries.
	VerifiedCacheClient *redis.Client
	// SweepLockClient holds the sweep serialization lock.
	SweepLockClient *redis.Client
)

func newClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func mustPing(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newClient(config.AppConfig.RedisCacheDB)
	mustPing(CacheClient, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitVerifiedCache initializes the Redis client for the verified-phone grace window.
func InitVerifiedCache() {
	VerifiedCacheClient = newClient(config.AppConfig.RedisVerifiedDB)
	mustPing(VerifiedCacheClient, "Verified Cache")
}

// GetVerifiedCacheClient returns the Redis client for the verified-phone grace window.
func GetVerifiedCacheClient() *redis.Client {
	if VerifiedCacheClient == nil {
		InitVerifiedCache()
	}
	return VerifiedCacheClient
}

// InitSweepLock initializes the Redis client backing the sweep lock.
func InitSweepLock() {
	SweepLockClient = newClient(config.AppConfig.RedisSweepLockDB)
	mustPing(SweepLockClient, "Sweep Lock")
}

// GetSweepLockClient returns the Redis client backing the sweep lock.
func GetSweepLockClient() *redis.Client {
	if SweepLockClient == nil {
		InitSweepLock()
	}
	return SweepLockClient
}
