package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same repository code runs inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgRepo struct {
	q querier
}

// PostgresStore implements Store on a pgxpool.Pool.
type PostgresStore struct {
	pgRepo
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pgRepo: pgRepo{q: pool}, pool: pool}
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(Repository) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgRepo{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const gameColumns = "game_id, igdb_id, title, description, release_date, cover_image_url, updated_at"

func scanGame(row pgx.Row) (*Game, error) {
	var g Game
	err := row.Scan(&g.ID, &g.IGDBID, &g.Title, &g.Description, &g.ReleaseDate, &g.CoverImageURL, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *pgRepo) FindByIGDBID(ctx context.Context, igdbID int64) (*Game, error) {
	g, err := scanGame(r.q.QueryRow(ctx,
		"SELECT "+gameColumns+" FROM games WHERE igdb_id = $1", igdbID))
	if err != nil || g == nil {
		return g, err
	}
	if err := r.loadAssociations(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *pgRepo) FindByID(ctx context.Context, id int64) (*Game, error) {
	g, err := scanGame(r.q.QueryRow(ctx,
		"SELECT "+gameColumns+" FROM games WHERE game_id = $1", id))
	if err != nil || g == nil {
		return g, err
	}
	if err := r.loadAssociations(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// SaveGame upserts the scalar columns keyed on igdb_id and returns the
// stored row with its surrogate key. Association lists are not touched.
func (r *pgRepo) SaveGame(ctx context.Context, g *Game) (*Game, error) {
	const query = `
		INSERT INTO games (igdb_id, title, description, release_date, cover_image_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (igdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			release_date = EXCLUDED.release_date,
			cover_image_url = EXCLUDED.cover_image_url,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + gameColumns

	saved, err := scanGame(r.q.QueryRow(ctx, query,
		g.IGDBID, g.Title, g.Description, g.ReleaseDate, g.CoverImageURL, g.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return saved, nil
}

func (r *pgRepo) List(ctx context.Context, q Query) ([]Game, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Q != "" {
		clauses = append(clauses, fmt.Sprintf("g.title ILIKE $%d", argn))
		args = append(args, "%"+q.Q+"%")
		argn++
	}

	if q.Genre != "" {
		clauses = append(clauses, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM game_genres gg JOIN genres ge ON ge.genre_id = gg.genre_id
			 WHERE gg.game_id = g.game_id AND lower(ge.name) = lower($%d))`, argn))
		args = append(args, q.Genre)
		argn++
	}

	order := "g.title ASC"
	if q.SortBy == "releasedate" {
		order = "g.release_date ASC NULLS LAST, g.title ASC"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	dataSQL := fmt.Sprintf(`
		SELECT g.game_id, g.igdb_id, g.title, g.description, g.release_date, g.cover_image_url, g.updated_at
		FROM games g
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		strings.Join(clauses, " AND "), order, argn, argn+1)

	args = append(args, limit, q.Offset)
	rows, err := r.q.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.IGDBID, &g.Title, &g.Description, &g.ReleaseDate, &g.CoverImageURL, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadAssociations(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *pgRepo) loadAssociations(ctx context.Context, g *Game) error {
	pubs, err := r.q.Query(ctx, `
		SELECT p.publisher_id, p.igdb_company_id, p.name
		FROM publishers p JOIN game_publishers gp ON gp.publisher_id = p.publisher_id
		WHERE gp.game_id = $1 ORDER BY p.name`, g.ID)
	if err != nil {
		return err
	}
	g.Publishers = []Publisher{}
	for pubs.Next() {
		var p Publisher
		if err := pubs.Scan(&p.ID, &p.IGDBCompanyID, &p.Name); err != nil {
			pubs.Close()
			return err
		}
		g.Publishers = append(g.Publishers, p)
	}
	pubs.Close()
	if err := pubs.Err(); err != nil {
		return err
	}

	devs, err := r.q.Query(ctx, `
		SELECT d.developer_id, d.igdb_company_id, d.name
		FROM developers d JOIN game_developers gd ON gd.developer_id = d.developer_id
		WHERE gd.game_id = $1 ORDER BY d.name`, g.ID)
	if err != nil {
		return err
	}
	g.Developers = []Developer{}
	for devs.Next() {
		var d Developer
		if err := devs.Scan(&d.ID, &d.IGDBCompanyID, &d.Name); err != nil {
			devs.Close()
			return err
		}
		g.Developers = append(g.Developers, d)
	}
	devs.Close()
	if err := devs.Err(); err != nil {
		return err
	}

	genres, err := r.q.Query(ctx, `
		SELECT ge.genre_id, ge.name
		FROM genres ge JOIN game_genres gg ON gg.genre_id = ge.genre_id
		WHERE gg.game_id = $1 ORDER BY ge.name`, g.ID)
	if err != nil {
		return err
	}
	g.Genres = []Genre{}
	for genres.Next() {
		var ge Genre
		if err := genres.Scan(&ge.ID, &ge.Name); err != nil {
			genres.Close()
			return err
		}
		g.Genres = append(g.Genres, ge)
	}
	genres.Close()
	if err := genres.Err(); err != nil {
		return err
	}

	plats, err := r.q.Query(ctx, `
		SELECT pl.platform_id, pl.name
		FROM platforms pl JOIN game_platforms gpl ON gpl.platform_id = pl.platform_id
		WHERE gpl.game_id = $1 ORDER BY pl.name`, g.ID)
	if err != nil {
		return err
	}
	g.Platforms = []Platform{}
	for plats.Next() {
		var pl Platform
		if err := plats.Scan(&pl.ID, &pl.Name); err != nil {
			plats.Close()
			return err
		}
		g.Platforms = append(g.Platforms, pl)
	}
	plats.Close()
	return plats.Err()
}

func (r *pgRepo) replaceJoin(ctx context.Context, table, refColumn string, gameID int64, ids []int64) error {
	if _, err := r.q.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE game_id = $1", table), gameID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for _, id := range ids {
		if _, err := r.q.Exec(ctx,
			fmt.Sprintf("INSERT INTO %s (game_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", table, refColumn),
			gameID, id); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func (r *pgRepo) ReplacePublishers(ctx context.Context, gameID int64, ids []int64) error {
	return r.replaceJoin(ctx, "game_publishers", "publisher_id", gameID, ids)
}

func (r *pgRepo) ReplaceDevelopers(ctx context.Context, gameID int64, ids []int64) error {
	return r.replaceJoin(ctx, "game_developers", "developer_id", gameID, ids)
}

func (r *pgRepo) ReplaceGenres(ctx context.Context, gameID int64, ids []int64) error {
	return r.replaceJoin(ctx, "game_genres", "genre_id", gameID, ids)
}

func (r *pgRepo) ReplacePlatforms(ctx context.Context, gameID int64, ids []int64) error {
	return r.replaceJoin(ctx, "game_platforms", "platform_id", gameID, ids)
}

func (r *pgRepo) FindPublisherByCompanyID(ctx context.Context, companyID int64) (*Publisher, error) {
	var p Publisher
	err := r.q.QueryRow(ctx,
		"SELECT publisher_id, igdb_company_id, name FROM publishers WHERE igdb_company_id = $1",
		companyID).Scan(&p.ID, &p.IGDBCompanyID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// CreatePublisher inserts the company if absent and returns the stored row.
// A concurrent insert of the same company id is absorbed by the refetch.
func (r *pgRepo) CreatePublisher(ctx context.Context, p *Publisher) (*Publisher, error) {
	if _, err := r.q.Exec(ctx,
		"INSERT INTO publishers (igdb_company_id, name) VALUES ($1, $2) ON CONFLICT (igdb_company_id) DO NOTHING",
		p.IGDBCompanyID, p.Name); err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	return r.FindPublisherByCompanyID(ctx, p.IGDBCompanyID)
}

func (r *pgRepo) FindDeveloperByCompanyID(ctx context.Context, companyID int64) (*Developer, error) {
	var d Developer
	err := r.q.QueryRow(ctx,
		"SELECT developer_id, igdb_company_id, name FROM developers WHERE igdb_company_id = $1",
		companyID).Scan(&d.ID, &d.IGDBCompanyID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *pgRepo) CreateDeveloper(ctx context.Context, d *Developer) (*Developer, error) {
	if _, err := r.q.Exec(ctx,
		"INSERT INTO developers (igdb_company_id, name) VALUES ($1, $2) ON CONFLICT (igdb_company_id) DO NOTHING",
		d.IGDBCompanyID, d.Name); err != nil {
		return nil, fmt.Errorf("create developer: %w", err)
	}
	return r.FindDeveloperByCompanyID(ctx, d.IGDBCompanyID)
}

func (r *pgRepo) FindGenreByName(ctx context.Context, name string) (*Genre, error) {
	var g Genre
	err := r.q.QueryRow(ctx,
		"SELECT genre_id, name FROM genres WHERE name = $1", name).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *pgRepo) CreateGenre(ctx context.Context, g *Genre) (*Genre, error) {
	if _, err := r.q.Exec(ctx,
		"INSERT INTO genres (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", g.Name); err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return r.FindGenreByName(ctx, g.Name)
}

func (r *pgRepo) FindPlatformByName(ctx context.Context, name string) (*Platform, error) {
	var p Platform
	err := r.q.QueryRow(ctx,
		"SELECT platform_id, name FROM platforms WHERE name = $1", name).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *pgRepo) CreatePlatform(ctx context.Context, p *Platform) (*Platform, error) {
	if _, err := r.q.Exec(ctx,
		"INSERT INTO platforms (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", p.Name); err != nil {
		return nil, fmt.Errorf("create platform: %w", err)
	}
	return r.FindPlatformByName(ctx, p.Name)
}
