package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-matcher/internal/semantic"
	"resume-matcher/internal/shared/telemetry"
	"resume-matcher/internal/shared/util"
)

const keyPrefix = "semantic:"

// Backend is the subset of *redis.Client the cache needs.
type Backend interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Provider memoizes successful analyses in Redis. Cache failures are logged and
// never fail the analysis; provider errors are never cached.
type Provider struct {
	base    semantic.Provider
	backend Backend
	ttl     time.Duration
}

// New wraps base with a Redis-backed cache. A non-positive ttl keeps entries forever.
func New(base semantic.Provider, backend Backend, ttl time.Duration) *Provider {
	return &Provider{base: base, backend: backend, ttl: ttl}
}

// Unwrap returns the uncached provider.
func (p *Provider) Unwrap() semantic.Provider {
	return p.base
}

// NewClient opens a Redis client and verifies connectivity.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (p *Provider) Analyze(ctx context.Context, resumeText, jobText string) (semantic.Analysis, error) {
	key := Key(resumeText, jobText)

	cached, err := p.backend.Get(ctx, key).Result()
	switch {
	case err == nil:
		var analysis semantic.Analysis
		if jsonErr := json.Unmarshal([]byte(cached), &analysis); jsonErr == nil {
			return analysis, nil
		}
		telemetry.Error("semantic.cache.decode_failed", map[string]any{"key": key})
	case !errors.Is(err, redis.Nil):
		telemetry.Error("semantic.cache.get_failed", map[string]any{"key": key, "error": err.Error()})
	}

	analysis, err := p.base.Analyze(ctx, resumeText, jobText)
	if err != nil {
		return semantic.Analysis{}, err
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return analysis, nil
	}
	ttl := p.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := p.backend.Set(ctx, key, payload, ttl).Err(); err != nil {
		telemetry.Error("semantic.cache.set_failed", map[string]any{"key": key, "error": err.Error()})
	}
	return analysis, nil
}

// Key derives the cache key of one resume/job pair.
func Key(resumeText, jobText string) string {
	return keyPrefix + util.HashKey(resumeText, jobText)
}

var _ semantic.Provider = (*Provider)(nil)
