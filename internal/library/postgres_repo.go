package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) AddGame(ctx context.Context, userID string, gameID int64) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO library_games (user_id, game_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, game_id) DO NOTHING`, userID, gameID)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 is a foreign key violation: the game id does not exist.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrGameNotFound
		}
		return fmt.Errorf("add game to library: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyInLibrary
	}
	return nil
}

func (r *PostgresRepo) RemoveGame(ctx context.Context, userID string, gameID int64) error {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM library_games WHERE user_id = $1 AND game_id = $2", userID, gameID)
	if err != nil {
		return fmt.Errorf("remove game from library: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotInLibrary
	}
	return nil
}

func (r *PostgresRepo) ListGames(ctx context.Context, userID string, q Query) ([]Entry, error) {
	clauses := "lg.user_id = $1"
	args := []any{userID}

	if q.Genre != "" {
		clauses += ` AND EXISTS (SELECT 1 FROM game_genres gg JOIN genres ge ON ge.genre_id = gg.genre_id
			WHERE gg.game_id = g.game_id AND lower(ge.name) = lower($2))`
		args = append(args, q.Genre)
	}

	order := "g.title ASC"
	if q.SortBy == "releasedate" {
		order = "g.release_date ASC NULLS LAST, g.title ASC"
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT g.game_id, g.igdb_id, g.title, g.description, g.release_date, g.cover_image_url, g.updated_at, lg.added_at
		FROM library_games lg
		JOIN games g ON g.game_id = lg.game_id
		WHERE %s
		ORDER BY %s`, clauses, order), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.Game.ID, &e.Game.IGDBID, &e.Game.Title, &e.Game.Description,
			&e.Game.ReleaseDate, &e.Game.CoverImageURL, &e.Game.UpdatedAt, &e.AddedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
