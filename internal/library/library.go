package library

import (
	"context"
	"errors"
	"time"

	"gamerecs/internal/game"
)

var (
	ErrAlreadyInLibrary = errors.New("game already in library")
	ErrGameNotFound     = errors.New("game not found")
	ErrNotInLibrary     = errors.New("game not in library")
)

// Entry is one game in a user's library.
type Entry struct {
	Game    game.Game `json:"game"`
	AddedAt time.Time `json:"added_at"`
}

// Query orders and filters a library listing. SortBy accepts "title"
// (default) and "releasedate".
type Query struct {
	SortBy string
	Genre  string
}

type Repository interface {
	AddGame(ctx context.Context, userID string, gameID int64) error
	RemoveGame(ctx context.Context, userID string, gameID int64) error
	ListGames(ctx context.Context, userID string, q Query) ([]Entry, error)
}
