// Package http реализует маршрутизацию HTTP-слоя сервера places.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - общие middleware (request id, логирование, recover, CORS, rate limit);
//   - Pipeline для защищённых маршрутов и загрузки картинок;
//   - раздачу загруженных картинок и swagger.
package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-places/internal/server/api"
	"github.com/IvanChernomyrdin/go-places/internal/server/config"
	"github.com/IvanChernomyrdin/go-places/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// limiter может быть nil — тогда rate limit не подключается,
// как и при security.rate_limit.enabled=false.
func NewRouter(h *api.Handler, cfg *config.Config, limiter middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	// паника превращается в обычную 500 с JSON-сообщением
	r.Use(middleware.Recover(h.Fail))
	r.Use(middleware.CORS(cfg.CORS))

	if rl := cfg.Security.RateLimit; rl.Enabled && limiter != nil {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:    limiter,
			Log:        h.Log,
			RPS:        rl.RPS,
			Burst:      rl.Burst,
			KeyBy:      rl.Key,
			Verifier:   h.Verifier,
			TrustProxy: cfg.Server.TrustProxy,
		}))
	}

	authOnly := middleware.Pipeline(h.Fail, h.Verifier.Authenticate)
	authWithImage := middleware.Pipeline(h.Fail, h.Verifier.Authenticate, h.Uploader.Single("image"))
	imageOnly := middleware.Pipeline(h.Fail, h.Uploader.Single("image"))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", h.Health)

	// загруженные картинки
	public := strings.TrimRight(cfg.Uploads.PublicPath, "/")
	r.Get(public+"/*", noDirListing(http.StripPrefix(public+"/", http.FileServer(http.Dir(cfg.Uploads.Dir))), h))

	r.Route("/api/places", func(r chi.Router) {
		r.Get("/user/{uid}", h.GetPlacesByUserID)
		r.Get("/{pid}", h.GetPlaceByID)
		// защищены пути
		r.With(authWithImage).Post("/", h.CreatePlace)
		r.With(authOnly).Patch("/{pid}", h.UpdatePlace)
		r.With(authOnly).Delete("/{pid}", h.DeletePlace)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.GetUsers)
		r.With(imageOnly).Post("/signup", h.Signup)
		r.Post("/login", h.Login)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r
}

// noDirListing — каталоги не показываем, только файлы.
func noDirListing(next http.Handler, h *api.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			h.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}
}
