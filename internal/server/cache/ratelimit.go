package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult — результат проверки лимита.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucketScript — атомарный token bucket.
// KEYS[1] — ключ бакета; ARGV: rate (токенов/сек), burst, now (мс), ttl (сек).
// Возвращает {allowed, retry_after_ms, tokens}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])

if tokens == nil then
  tokens = burst
  ts = now
end

local elapsed = math.max(0, now - ts) / 1000
tokens = math.min(burst, tokens + elapsed * rate)

local allowed = 0
local retry_after = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  retry_after = math.ceil((1 - tokens) / rate * 1000)
end

redis.call('HMSET', key, 'tokens', tokens, 'ts', now)
redis.call('EXPIRE', key, ttl)

return {allowed, retry_after, math.floor(tokens)}
`)

// Allow списывает один токен из бакета key.
// rps — скорость пополнения, burst — ёмкость бакета.
func (c *Cache) Allow(ctx context.Context, key string, rps float64, burst int) (*RateLimitResult, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("invalid rate limit: rps=%v burst=%d", rps, burst)
	}

	now := time.Now()
	// бакет полностью восстанавливается за burst/rps, дольше хранить незачем
	ttl := int64(float64(burst)/rps) + 1

	res, err := tokenBucketScript.Run(ctx, c.client,
		[]string{"ratelimit:" + hashKey(key)},
		rps, burst, now.UnixMilli(), ttl,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	retryAfter := time.Duration(res[1]) * time.Millisecond
	resetAt := now
	if res[0] == 0 {
		resetAt = now.Add(retryAfter)
	}

	return &RateLimitResult{
		Allowed:    res[0] == 1,
		Remaining:  res[2],
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}, nil
}

// hashKey — IP и id пользователя в Redis не храним в открытом виде.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
