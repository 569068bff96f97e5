package game

import "context"

// GameRepository persists catalog records. Find methods return (nil, nil)
// when no row matches.
type GameRepository interface {
	FindByIGDBID(ctx context.Context, igdbID int64) (*Game, error)
	FindByID(ctx context.Context, id int64) (*Game, error)
	SaveGame(ctx context.Context, g *Game) (*Game, error)
	List(ctx context.Context, q Query) ([]Game, error)

	ReplacePublishers(ctx context.Context, gameID int64, ids []int64) error
	ReplaceDevelopers(ctx context.Context, gameID int64, ids []int64) error
	ReplaceGenres(ctx context.Context, gameID int64, ids []int64) error
	ReplacePlatforms(ctx context.Context, gameID int64, ids []int64) error
}

type PublisherRepository interface {
	FindPublisherByCompanyID(ctx context.Context, companyID int64) (*Publisher, error)
	CreatePublisher(ctx context.Context, p *Publisher) (*Publisher, error)
}

type DeveloperRepository interface {
	FindDeveloperByCompanyID(ctx context.Context, companyID int64) (*Developer, error)
	CreateDeveloper(ctx context.Context, d *Developer) (*Developer, error)
}

type GenreRepository interface {
	FindGenreByName(ctx context.Context, name string) (*Genre, error)
	CreateGenre(ctx context.Context, g *Genre) (*Genre, error)
}

type PlatformRepository interface {
	FindPlatformByName(ctx context.Context, name string) (*Platform, error)
	CreatePlatform(ctx context.Context, p *Platform) (*Platform, error)
}

// Repository bundles every table touched by a catalog upsert.
type Repository interface {
	GameRepository
	PublisherRepository
	DeveloperRepository
	GenreRepository
	PlatformRepository
}

// Store is a Repository that can also run a function against a
// transaction-scoped Repository. The transaction commits when fn returns
// nil and rolls back otherwise.
type Store interface {
	Repository
	WithTx(ctx context.Context, fn func(Repository) error) error
}
