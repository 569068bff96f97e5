package sync

import (
	"context"
	"fmt"

	"gamerecs/internal/game"
	"gamerecs/internal/platform/igdb"
)

// Resolver maps IGDB reference payloads to stored reference rows, creating
// rows on first sight. A company or name seen under two spellings keeps the
// name it was first stored with.
type Resolver struct {
	repo game.Repository
}

func NewResolver(repo game.Repository) *Resolver {
	return &Resolver{repo: repo}
}

func (rs *Resolver) ResolvePublishers(ctx context.Context, companies []igdb.Company) ([]int64, error) {
	ids := make([]int64, 0, len(companies))
	seen := make(map[int64]bool, len(companies))
	for _, c := range companies {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		p, err := rs.repo.FindPublisherByCompanyID(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve publisher %d: %w", c.ID, err)
		}
		if p == nil {
			p, err = rs.repo.CreatePublisher(ctx, &game.Publisher{IGDBCompanyID: c.ID, Name: c.Name})
			if err != nil {
				return nil, fmt.Errorf("resolve publisher %d: %w", c.ID, err)
			}
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (rs *Resolver) ResolveDevelopers(ctx context.Context, companies []igdb.Company) ([]int64, error) {
	ids := make([]int64, 0, len(companies))
	seen := make(map[int64]bool, len(companies))
	for _, c := range companies {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		d, err := rs.repo.FindDeveloperByCompanyID(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve developer %d: %w", c.ID, err)
		}
		if d == nil {
			d, err = rs.repo.CreateDeveloper(ctx, &game.Developer{IGDBCompanyID: c.ID, Name: c.Name})
			if err != nil {
				return nil, fmt.Errorf("resolve developer %d: %w", c.ID, err)
			}
		}
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (rs *Resolver) ResolveGenres(ctx context.Context, refs []igdb.GenreRef) ([]int64, error) {
	ids := make([]int64, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true

		g, err := rs.repo.FindGenreByName(ctx, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve genre %q: %w", ref.Name, err)
		}
		if g == nil {
			g, err = rs.repo.CreateGenre(ctx, &game.Genre{Name: ref.Name})
			if err != nil {
				return nil, fmt.Errorf("resolve genre %q: %w", ref.Name, err)
			}
		}
		ids = append(ids, g.ID)
	}
	return ids, nil
}

func (rs *Resolver) ResolvePlatforms(ctx context.Context, refs []igdb.PlatformRef) ([]int64, error) {
	ids := make([]int64, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true

		p, err := rs.repo.FindPlatformByName(ctx, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve platform %q: %w", ref.Name, err)
		}
		if p == nil {
			p, err = rs.repo.CreatePlatform(ctx, &game.Platform{Name: ref.Name})
			if err != nil {
				return nil, fmt.Errorf("resolve platform %q: %w", ref.Name, err)
			}
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}
