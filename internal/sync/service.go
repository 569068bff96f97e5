package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gamerecs/internal/game"
	"gamerecs/internal/metrics"
	"gamerecs/internal/platform/igdb"
)

// Result carries the stored records of one sync run plus its counters.
// Games holds every fetched record in input order, whether it was written
// or skipped as already current.
type Result struct {
	Fetched  int         `json:"fetched"`
	Upserted int         `json:"upserted"`
	Skipped  int         `json:"skipped"`
	Games    []game.Game `json:"games"`
}

// Service pulls search results from IGDB and reconciles them into the store.
type Service struct {
	searcher igdb.Searcher
	store    game.Store
	logger   *zap.Logger
}

func NewService(searcher igdb.Searcher, store game.Store, logger *zap.Logger) *Service {
	return &Service{searcher: searcher, store: store, logger: logger}
}

// SyncFromQuery searches IGDB and upserts every result. The first failed
// upsert aborts the run; games already written stay written.
func (s *Service) SyncFromQuery(ctx context.Context, query string) (Result, error) {
	games, err := s.searcher.SearchGames(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("sync %q: %w", query, err)
	}

	res := Result{Fetched: len(games), Games: make([]game.Game, 0, len(games))}
	for i := range games {
		saved, skipped, err := s.UpsertGame(ctx, &games[i])
		if err != nil {
			metrics.SyncErrorsTotal.Inc()
			s.logger.Error("upsert failed",
				zap.Int64("igdb_id", games[i].ID),
				zap.String("name", games[i].Name),
				zap.Error(err),
			)
			return res, fmt.Errorf("sync %q: game %d: %w", query, games[i].ID, err)
		}
		res.Games = append(res.Games, *saved)
		if skipped {
			res.Skipped++
			continue
		}
		res.Upserted++
		s.logger.Debug("game upserted",
			zap.Int64("igdb_id", saved.IGDBID),
			zap.String("title", saved.Title),
		)
	}

	s.logger.Info("sync complete",
		zap.String("query", query),
		zap.Int("fetched", res.Fetched),
		zap.Int("upserted", res.Upserted),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// UpsertGame writes one IGDB record and its associations in a single
// transaction. When the stored copy carries an update timestamp at or after
// the incoming one, nothing is written and the stored game is returned.
func (s *Service) UpsertGame(ctx context.Context, ig *igdb.Game) (*game.Game, bool, error) {
	var out *game.Game
	var skipped bool

	err := s.store.WithTx(ctx, func(repo game.Repository) error {
		existing, err := repo.FindByIGDBID(ctx, ig.ID)
		if err != nil {
			return err
		}

		incoming := ig.UpdatedTime()
		if existing != nil && existing.UpdatedAt != nil && !incoming.After(*existing.UpdatedAt) {
			out, skipped = existing, true
			return nil
		}

		saved, err := repo.SaveGame(ctx, &game.Game{
			IGDBID:        ig.ID,
			Title:         ig.Name,
			Description:   ig.Summary,
			ReleaseDate:   ig.ReleaseDate,
			CoverImageURL: ig.CoverURL,
			UpdatedAt:     &incoming,
		})
		if err != nil {
			return err
		}

		resolver := NewResolver(repo)

		// Publishers and Developers are always present on a decoded record,
		// so their associations are always rebuilt. Genres and Platforms are
		// nil when IGDB omitted them, which leaves the stored lists alone.
		pubIDs, err := resolver.ResolvePublishers(ctx, ig.Publishers)
		if err != nil {
			return err
		}
		if err := repo.ReplacePublishers(ctx, saved.ID, pubIDs); err != nil {
			return err
		}

		devIDs, err := resolver.ResolveDevelopers(ctx, ig.Developers)
		if err != nil {
			return err
		}
		if err := repo.ReplaceDevelopers(ctx, saved.ID, devIDs); err != nil {
			return err
		}

		if ig.Genres != nil {
			genreIDs, err := resolver.ResolveGenres(ctx, ig.Genres)
			if err != nil {
				return err
			}
			if err := repo.ReplaceGenres(ctx, saved.ID, genreIDs); err != nil {
				return err
			}
		}

		if ig.Platforms != nil {
			platformIDs, err := resolver.ResolvePlatforms(ctx, ig.Platforms)
			if err != nil {
				return err
			}
			if err := repo.ReplacePlatforms(ctx, saved.ID, platformIDs); err != nil {
				return err
			}
		}

		out = saved
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if skipped {
		metrics.GamesSkippedTotal.Inc()
	} else {
		metrics.GamesUpsertedTotal.Inc()
	}
	return out, skipped, nil
}
