// @title           Places API
// @version         1.0
// @description     Share places with geotags and photos.
// @description     Users sign up, log in and manage the places they created.
// @termsOfService  https://example.com/terms

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin
// @contact.email  ivan@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа сервера places.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера:
//   - загрузку .env (если есть) и ./configs/server.yaml;
//   - подключение к PostgreSQL и миграции;
//   - опциональное подключение к Redis для rate limit;
//   - сборку репозиториев, сервисов, middleware и хендлеров;
//   - запуск сервера и graceful shutdown по SIGINT/SIGTERM/SIGQUIT.
//
// Бизнес-логики здесь нет.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-places/internal/server/api"
	"github.com/IvanChernomyrdin/go-places/internal/server/cache"
	"github.com/IvanChernomyrdin/go-places/internal/server/config"
	"github.com/IvanChernomyrdin/go-places/internal/server/geocode"
	"github.com/IvanChernomyrdin/go-places/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-places/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-places/internal/server/repository"
	"github.com/IvanChernomyrdin/go-places/internal/server/service"
	"github.com/IvanChernomyrdin/go-places/internal/server/storage"
	"github.com/IvanChernomyrdin/go-places/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-places/swagger/docs"
)

func main() {
	boot := logger.NewHTTPLogger().Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		boot.Fatal(err)
	}

	httpLogger := logger.New(logger.Options{
		Dir:    cfg.Log.Dir,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Stdout: cfg.Log.Stdout,
	})
	defer httpLogger.Sync()
	sugar := httpLogger.Logger.Sugar()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных
	db, err := config.OpenDB(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer db.Close()

	if cfg.Migrations.Enabled {
		if err := config.RunMigrations(db, cfg.Migrations); err != nil {
			sugar.Fatal(err)
		}
	}

	images, err := storage.NewImageStore(cfg.Uploads.Dir, httpLogger)
	if err != nil {
		sugar.Fatal(err)
	}

	// создаём репы
	repos := service.Repositories{
		Users:  repository.NewUsersRepository(db),
		Places: repository.NewPlacesRepository(db),
		Tx:     service.NewTxManager(repository.NewTxManager(db).Begin),
		Health: repository.NewHealthRepository(db),
	}
	deps := service.Deps{
		Geocoder: geocode.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.APIKey, cfg.Geocoding.Timeout),
		Images:   images,
		Log:      httpLogger,
	}

	svc, err := service.NewServices(repos, deps, cfg)
	if err != nil {
		sugar.Fatal(err)
	}

	// redis нужен только для rate limit
	var limiter middleware.RateLimiter
	if cfg.Security.RateLimit.Enabled {
		rdb, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			sugar.Fatal(err)
		}
		defer rdb.Close()

		limiter = rdb
		svc.Health.Register("redis", rdb)
	}

	verifier := middleware.NewJWTVerifier(service.JWTConfigFrom(cfg))
	uploader := middleware.NewUploader(images, cfg.Uploads.MaxFileBytes)

	handler := api.NewHandler(svc, httpLogger, verifier, uploader, images)
	router := h.NewRouter(handler, cfg, limiter)

	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infow("server started", zap.String("addr", addr), zap.Bool("tls", cfg.TLS.Enabled))

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
