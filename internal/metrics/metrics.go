package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IGDB client metrics
	IGDBRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamerecs_igdb_requests_total",
		Help: "The total number of search requests issued to the IGDB API",
	})
	IGDBRequestErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamerecs_igdb_request_errors_total",
		Help: "The total number of failed IGDB API calls after retries",
	})
	IGDBRequestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gamerecs_igdb_request_latency_seconds",
		Help:    "Latency of IGDB API search calls",
		Buckets: prometheus.DefBuckets,
	})

	// Search cache metrics
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamerecs_igdb_cache_hits_total",
		Help: "The total number of IGDB search cache hits",
	})
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamerecs_igdb_cache_misses_total",
		Help: "The total number of IGDB search cache misses",
	})
	CacheEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamerecs_igdb_cache_evictions_total",
		Help: "The total number of IGDB search cache evictions (capacity or expiry)",
	})

	// Sync pipeline metrics
	GamesUpsertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamerecs_sync_games_upserted_total",
		Help: "The total number of game records created or updated by the sync pipeline",
	})
	GamesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamerecs_sync_games_skipped_total",
		Help: "The total number of game records skipped because the stored copy was newer",
	})
	SyncErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamerecs_sync_errors_total",
		Help: "The total number of failed game upserts",
	})
)
