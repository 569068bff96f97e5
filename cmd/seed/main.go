package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gamerecs/internal/config"
	"gamerecs/internal/game"
	"gamerecs/internal/logging"
	"gamerecs/internal/platform/igdb"
	"gamerecs/internal/sync"
)

// Bootstraps the catalog by running the sync pipeline for a set of search
// queries against the live IGDB API.
func main() {
	queries := flag.String("queries", "zelda,mario,final fantasy,dark souls,portal", "Comma-separated search queries to sync")
	flag.Parse()

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

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	client := igdb.NewClient(
		cfg.IGDB.ClientID, cfg.IGDB.AccessToken,
		cfg.IGDB.RequestsPerSec, cfg.IGDB.MaxRetries, logger,
	)
	svc := sync.NewService(client, game.NewPostgresStore(pool), logger)

	start := time.Now()
	var total sync.Result
	for _, q := range strings.Split(*queries, ",") {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		res, err := svc.SyncFromQuery(ctx, q)
		if err != nil {
			logger.Fatal("seed sync failed", zap.String("query", q), zap.Error(err))
		}
		total.Fetched += res.Fetched
		total.Upserted += res.Upserted
		total.Skipped += res.Skipped
	}

	logger.Info("seed complete",
		zap.Int("fetched", total.Fetched),
		zap.Int("upserted", total.Upserted),
		zap.Int("skipped", total.Skipped),
		zap.Duration("took", time.Since(start)),
	)
}
