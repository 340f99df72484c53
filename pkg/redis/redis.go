package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Syedfarrukh0/rfid-backend-prac/config"
)

// Client wraps the Redis connection. It backs the token blacklist, the
// rate limiter and the transient per-device state (pending commands,
// last wifi scan). Key TTLs are the eviction policy for device state.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects and runs a ping health check.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken stores a JWT ID until the token's own expiry.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token already expired, nothing to block
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether a JWT ID has been revoked.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── rate limiting ──

// CheckRateLimit admits at most limit requests per key inside a sliding
// window. Returns false when the caller should be throttled.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", cutoff)
	count := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() < int64(limit), nil
}

// ── transient device state ──

const (
	deviceCommandPrefix = "device:command:"
	deviceScanPrefix    = "device:wifiscan:"
)

// QueueDeviceCommand stores one pending command per device; a newer
// command replaces an undelivered one, and the TTL evicts commands no
// terminal ever picked up.
func (c *Client) QueueDeviceCommand(ctx context.Context, deviceUUID string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, deviceCommandPrefix+deviceUUID, payload, ttl).Err()
}

// PopDeviceCommand atomically fetches and clears the pending command.
// Returns (nil, nil) when nothing is queued.
func (c *Client) PopDeviceCommand(ctx context.Context, deviceUUID string) ([]byte, error) {
	payload, err := c.rdb.GetDel(ctx, deviceCommandPrefix+deviceUUID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// StoreWifiScan keeps a device's latest scan result until the TTL
// evicts it.
func (c *Client) StoreWifiScan(ctx context.Context, deviceUUID string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, deviceScanPrefix+deviceUUID, payload, ttl).Err()
}

// GetWifiScan returns the device's latest scan result, or (nil, nil)
// when none was reported within the retention window.
func (c *Client) GetWifiScan(ctx context.Context, deviceUUID string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, deviceScanPrefix+deviceUUID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.rdb.Close()
}
