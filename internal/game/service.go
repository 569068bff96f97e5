package game

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup targets a game that is not stored.
var ErrNotFound = errors.New("game not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, q Query) ([]Game, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Game, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}
