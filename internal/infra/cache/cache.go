// Package cache provides a Redis-backed cache for external lookups, so
// re-runs and resumed runs do not burn API quota on identifiers already
// fetched.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/enricher/internal/core/domain"
)

// Config holds Redis connection configuration.
type Config struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	TTL      time.Duration `yaml:"ttl"`
}

// Client wraps Redis operations for the lookup cache.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.TTL}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

func recordKey(cas string) string {
	return fmt.Sprintf("pubchem:%s", cas)
}

// GetRecord retrieves a cached lookup result. found=false on miss.
func (c *Client) GetRecord(ctx context.Context, cas string) (domain.SourceRecord, bool, error) {
	data, err := c.rdb.Get(ctx, recordKey(cas)).Bytes()
	if err == redis.Nil {
		return domain.SourceRecord{}, false, nil
	}
	if err != nil {
		return domain.SourceRecord{}, false, fmt.Errorf("get failed: %w", err)
	}

	var record domain.SourceRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.SourceRecord{}, false, fmt.Errorf("decode failed: %w", err)
	}
	return record, true, nil
}

// SetRecord stores a lookup result with the configured TTL.
func (c *Client) SetRecord(ctx context.Context, cas string, record domain.SourceRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}
	if err := c.rdb.Set(ctx, recordKey(cas), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	return nil
}
