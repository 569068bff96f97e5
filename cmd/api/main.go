package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gamerecs/internal/config"
	"gamerecs/internal/game"
	"gamerecs/internal/httpx"
	"gamerecs/internal/library"
	"gamerecs/internal/logging"
	"gamerecs/internal/platform/igdb"
	"gamerecs/internal/sync"
	"gamerecs/internal/user"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	dbPool := mustOpenDB(cfg.Database.DSN, logger)
	defer dbPool.Close()

	gameStore := game.NewPostgresStore(dbPool)
	userRepo := user.NewPostgresRepo(dbPool, 5*time.Second)
	libraryRepo := library.NewPostgresRepo(dbPool)

	igdbClient := igdb.NewClient(
		cfg.IGDB.ClientID, cfg.IGDB.AccessToken,
		cfg.IGDB.RequestsPerSec, cfg.IGDB.MaxRetries, logger,
	)
	searchCache := igdb.NewSearchCache(igdbClient, cfg.IGDB.CacheTTL, cfg.IGDB.CacheMaxEntries)

	gameHandler := game.NewHTTPHandler(game.NewService(gameStore))
	userHandler := user.NewHTTPHandler(user.NewService(userRepo), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	libraryHandler := library.NewHTTPHandler(library.NewService(libraryRepo))
	syncHandler := sync.NewHTTPHandler(sync.NewService(searchCache, gameStore, logger), searchCache)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.Handler())

	router.HandleFunc("GET /v1/games", gameHandler.List)
	router.HandleFunc("GET /v1/games/{id}", gameHandler.GetByID)

	router.HandleFunc("POST /v1/users/register", userHandler.Register)
	router.HandleFunc("POST /v1/users/login", userHandler.Login)

	authed := httpx.AuthMiddleware(cfg.Auth.JWTSecret)
	adminOnly := httpx.RequireRole("ADMIN")

	router.Handle("GET /v1/users/me", authed(http.HandlerFunc(userHandler.Me)))

	router.Handle("POST /v1/igdb/update", authed(http.HandlerFunc(syncHandler.Update)))
	router.Handle("POST /v1/igdb/clear-cache", authed(adminOnly(http.HandlerFunc(syncHandler.ClearCache))))

	router.Handle("GET /v1/library", authed(http.HandlerFunc(libraryHandler.List)))
	router.Handle("POST /v1/library/games/{id}", authed(http.HandlerFunc(libraryHandler.AddGame)))
	router.Handle("DELETE /v1/library/games/{id}", authed(http.HandlerFunc(libraryHandler.RemoveGame)))

	rateLimit := httpx.NewRateLimitMiddleware(20, 40)

	var handler http.Handler = router
	handler = rateLimit.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(1 << 20)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.CORSMiddleware(cfg.Server.AllowedOrigins)(handler)
	handler = httpx.RecoveryMiddleware(logger)(handler)
	handler = httpx.AccessLogMiddleware(logger)(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("starting server", zap.String("addr", cfg.Server.Addr), zap.String("environment", cfg.Environment))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func mustOpenDB(dsn string, logger *zap.Logger) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("cannot create db pool", zap.Error(err))
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Fatal("cannot ping database", zap.String("dsn", redactDSN(dsn)), zap.Error(err))
	}
	logger.Info("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
