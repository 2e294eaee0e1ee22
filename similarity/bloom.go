package similarity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// BloomConfig configures the RedisBloom-backed resubmission filter.
type BloomConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string // redis key for the bloom filter
	// TTL keeps the filter alive this long after the most recent insert.
	TTL time.Duration
	// Capacity sets the initial BF.RESERVE capacity (number of items).
	Capacity int
	// ErrorRate sets the desired false positive probability (e.g. 0.001).
	ErrorRate float64
}

// RedisBloom remembers hashes of previously screened submission text in a
// Redis bloom filter, giving the screener a cheap probabilistic
// exact-resubmission check before any corpus lookup.
type RedisBloom struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

const (
	defaultBloomKey       = "screening:content:bloom"
	defaultBloomTTL       = 30 * 24 * time.Hour
	defaultBloomCapacity  = 100000
	defaultBloomErrorRate = 0.001
	bloomCommandTimeout   = 5 * time.Second
)

// NewRedisBloom creates the filter and verifies Redis connectivity.
func NewRedisBloom(cfg BloomConfig) (*RedisBloom, error) {
	if cfg.Key == "" {
		cfg.Key = defaultBloomKey
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultBloomTTL
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultBloomCapacity
	}
	if cfg.ErrorRate <= 0 {
		cfg.ErrorRate = defaultBloomErrorRate
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), bloomCommandTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	// Reserve the filter if the key does not exist yet. BF.RESERVE failing
	// is non-fatal: BF.ADD can auto-create depending on RedisBloom settings.
	exists, err := client.Exists(ctx, cfg.Key).Result()
	if err == nil && exists == 0 {
		_ = client.Do(ctx, "BF.RESERVE", cfg.Key, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity).Err()
	}

	return &RedisBloom{client: client, key: cfg.Key, ttl: cfg.TTL}, nil
}

// Exists checks whether the hash is probably present in the filter.
func (r *RedisBloom) Exists(hash string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), bloomCommandTimeout)
	defer cancel()

	res, err := r.client.Do(ctx, "BF.EXISTS", r.key, hash).Result()
	if err != nil {
		return false, err
	}

	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Add inserts the hash and refreshes the key's TTL so the filter stays
// active for the configured window after the most recent insertion.
func (r *RedisBloom) Add(hash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), bloomCommandTimeout)
	defer cancel()

	if err := r.client.Do(ctx, "BF.ADD", r.key, hash).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, r.key, r.ttl).Err()
}

// Close closes the underlying Redis client.
func (r *RedisBloom) Close() error {
	return r.client.Close()
}

// NormalizeAndHash lowercases the text, collapses whitespace runs and
// returns the SHA-256 hex digest, so trivially reformatted resubmissions
// hash identically.
func NormalizeAndHash(text string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	digest := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(digest[:])
}
