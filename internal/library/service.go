package library

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddGame(ctx context.Context, userID string, gameID int64) error {
	return s.repo.AddGame(ctx, userID, gameID)
}

func (s *Service) RemoveGame(ctx context.Context, userID string, gameID int64) error {
	return s.repo.RemoveGame(ctx, userID, gameID)
}

func (s *Service) ListGames(ctx context.Context, userID string, q Query) ([]Entry, error) {
	if q.SortBy != "releasedate" {
		q.SortBy = "title"
	}
	return s.repo.ListGames(ctx, userID, q)
}
