package vc

//go:generate mockgen -source=cache.go -destination=mocks/cache_mock.go -package=mocks Cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"vcgate/internal/platform/metrics"
	"vcgate/internal/platform/redis"
)

// Cache stores verification results keyed by a hash of the raw token.
// Entries are bounded by a TTL that must stay below the credential validity
// window, so a cache hit can never outlive the credential it fronts.
type Cache interface {
	Get(ctx context.Context, key string) (*VerifiedClaims, bool, error)
	Set(ctx context.Context, key string, claims *VerifiedClaims, ttl time.Duration) error
}

// CachedVerifier decorates a ClaimsVerifier with a token-hash cache.
// Only successful verifications are cached; failures always re-verify.
type CachedVerifier struct {
	inner   ClaimsVerifier
	cache   Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCachedVerifier(inner ClaimsVerifier, cache Cache, ttl time.Duration, m *metrics.Metrics) *CachedVerifier {
	return &CachedVerifier{inner: inner, cache: cache, ttl: ttl, metrics: m, now: time.Now}
}

func (c *CachedVerifier) Verify(ctx context.Context, token string) (*VerifiedClaims, error) {
	key := TokenHash(token)

	if claims, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		if c.metrics != nil {
			c.metrics.VerifyCacheHits.Inc()
		}
		return claims, nil
	}
	// Cache errors degrade to a plain verification; the cache is an
	// optimization, never an authority.

	claims, err := c.inner.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if ttl := c.entryTTL(claims); ttl > 0 {
		_ = c.cache.Set(ctx, key, claims, ttl)
	}
	return claims, nil
}

// entryTTL bounds the cache entry by the credential's own remaining lifetime,
// so a hit can never authenticate a token past its exp claim.
func (c *CachedVerifier) entryTTL(claims *VerifiedClaims) time.Duration {
	ttl := c.ttl
	if !claims.ExpiresAt.IsZero() {
		if remaining := claims.ExpiresAt.Sub(c.now()); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

// TokenHash derives the cache key from the raw token so the credential
// itself is never stored as a key.
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "vc:verify:" + hex.EncodeToString(sum[:])
}

// RedisCache is the Redis-backed Cache implementation.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*VerifiedClaims, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var claims VerifiedClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, false, err
	}
	return &claims, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, claims *VerifiedClaims, ttl time.Duration) error {
	raw, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}
