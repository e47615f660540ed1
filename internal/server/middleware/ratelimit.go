package middleware

import (
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-places/internal/server/cache"
	"github.com/IvanChernomyrdin/go-places/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-places/internal/shared/models"
)

// MsgRateLimited — тело ответа 429.
const MsgRateLimited = "Too many requests, please try again later."

// RateLimiter — token bucket (cache.Cache в проде).
type RateLimiter interface {
	Allow(ctx context.Context, key string, rps float64, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig — настройки middleware.
type RateLimitConfig struct {
	Limiter    RateLimiter
	Log        *logger.HTTPLogger
	RPS        float64
	Burst      int
	KeyBy      string       // ip|user
	Verifier   *JWTVerifier // нужен для KeyBy=user
	TrustProxy bool         // брать IP из X-Forwarded-For / X-Real-IP
}

// RateLimit ограничивает частоту запросов по IP или по пользователю.
// Для user без валидного токена ключом становится IP.
// Если Redis недоступен, запрос пропускается.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := "ip:" + clientIP(r, cfg.TrustProxy)
			if cfg.KeyBy == "user" && cfg.Verifier != nil {
				if id, err := cfg.Verifier.UserID(r); err == nil {
					key = "user:" + id.String()
				}
			}

			res, err := cfg.Limiter.Allow(r.Context(), key, cfg.RPS, cfg.Burst)
			if err != nil {
				cfg.Log.Error("rate limit check failed",
					zap.Error(err),
					zap.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))

			if !res.Allowed {
				retry := int(math.Ceil(res.RetryAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}
				cfg.Log.Warn("rate limit exceeded",
					zap.String("key_type", strings.SplitN(key, ":", 2)[0]),
					zap.String("endpoint", r.Method+" "+r.URL.Path),
					zap.Int("retry_after_seconds", retry),
					zap.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: MsgRateLimited})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP — IP клиента. Заголовкам прокси верим только при trustProxy.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
