// Package usecase implements the business logic for the games catalog.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blog_backend/internal/feature/games/domain/entity"
)

// ErrValidation is returned when a game fails a field-level check.
var ErrValidation = errors.New("invalid game data")

// GameRepository abstracts the persistence layer for games.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type GameRepository interface {
	FindAll(ctx context.Context) ([]entity.Game, error)
	Create(ctx context.Context, game *entity.Game) error
	CreateBatch(ctx context.Context, games []entity.Game) ([]entity.Game, error)
	// Delete removes a game; deleting a missing ID is not an error.
	Delete(ctx context.Context, id uint) error
}

// gamesUsecase provides business logic for the games catalog.
type gamesUsecase struct {
	games GameRepository
}

// NewGamesUsecase creates a new gamesUsecase with the given repository.
func NewGamesUsecase(games GameRepository) *gamesUsecase {
	return &gamesUsecase{games: games}
}

// List returns every game in the catalog.
func (u *gamesUsecase) List(ctx context.Context) ([]entity.Game, error) {
	return u.games.FindAll(ctx)
}

// Create validates and persists a single game.
func (u *gamesUsecase) Create(ctx context.Context, game entity.Game) (*entity.Game, error) {
	if strings.TrimSpace(game.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if err := u.games.Create(ctx, &game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &game, nil
}

// CreateMany validates every game first, then inserts the whole batch
// atomically.
func (u *gamesUsecase) CreateMany(ctx context.Context, games []entity.Game) ([]entity.Game, error) {
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: batch must contain at least one game", ErrValidation)
	}
	for i, g := range games {
		if strings.TrimSpace(g.Name) == "" {
			return nil, fmt.Errorf("item %d: %w: name must not be empty", i, ErrValidation)
		}
	}
	created, err := u.games.CreateBatch(ctx, games)
	if err != nil {
		return nil, fmt.Errorf("failed to create games: %w", err)
	}
	return created, nil
}

// Delete removes a game by ID. Deletion is idempotent.
func (u *gamesUsecase) Delete(ctx context.Context, id uint) error {
	return u.games.Delete(ctx, id)
}
