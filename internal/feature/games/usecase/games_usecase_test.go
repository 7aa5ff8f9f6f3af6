package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_backend/internal/feature/games/domain/entity"
)

// mockGameRepository はテスト用のGameRepositoryモックです。
type mockGameRepository struct {
	findAllFunc     func(ctx context.Context) ([]entity.Game, error)
	createFunc      func(ctx context.Context, game *entity.Game) error
	createBatchFunc func(ctx context.Context, games []entity.Game) ([]entity.Game, error)
	deleteFunc      func(ctx context.Context, id uint) error
}

func (m *mockGameRepository) FindAll(ctx context.Context) ([]entity.Game, error) {
	return m.findAllFunc(ctx)
}

func (m *mockGameRepository) Create(ctx context.Context, game *entity.Game) error {
	return m.createFunc(ctx, game)
}

func (m *mockGameRepository) CreateBatch(ctx context.Context, games []entity.Game) ([]entity.Game, error) {
	return m.createBatchFunc(ctx, games)
}

func (m *mockGameRepository) Delete(ctx context.Context, id uint) error {
	return m.deleteFunc(ctx, id)
}

var _ GameRepository = (*mockGameRepository)(nil)

func TestGamesUsecase_List(t *testing.T) {
	repo := &mockGameRepository{
		findAllFunc: func(ctx context.Context) ([]entity.Game, error) {
			return []entity.Game{{ID: 1, Name: "Hades"}}, nil
		},
	}

	games, err := NewGamesUsecase(repo).List(context.Background())

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Hades", games[0].Name)
}

func TestGamesUsecase_Create(t *testing.T) {
	repo := &mockGameRepository{
		createFunc: func(ctx context.Context, game *entity.Game) error {
			game.ID = 4
			return nil
		},
	}

	game, err := NewGamesUsecase(repo).Create(context.Background(), entity.Game{Name: "Celeste", Year: 2018})

	require.NoError(t, err)
	assert.Equal(t, uint(4), game.ID)
	assert.Equal(t, "Celeste", game.Name)
}

func TestGamesUsecase_Create_EmptyName(t *testing.T) {
	repo := &mockGameRepository{
		createFunc: func(ctx context.Context, game *entity.Game) error {
			t.Fatal("repository must not be called on invalid input")
			return nil
		},
	}

	_, err := NewGamesUsecase(repo).Create(context.Background(), entity.Game{Name: "   "})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestGamesUsecase_CreateMany(t *testing.T) {
	repo := &mockGameRepository{
		createBatchFunc: func(ctx context.Context, games []entity.Game) ([]entity.Game, error) {
			for i := range games {
				games[i].ID = uint(i + 1)
			}
			return games, nil
		},
	}

	created, err := NewGamesUsecase(repo).CreateMany(context.Background(), []entity.Game{
		{Name: "uno"},
		{Name: "dos"},
	})

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, uint(2), created[1].ID)
}

func TestGamesUsecase_CreateMany_Validation(t *testing.T) {
	tests := []struct {
		name    string
		games   []entity.Game
		wantMsg string
	}{
		{"empty batch", nil, "at least one game"},
		{"blank name in batch", []entity.Game{{Name: "ok"}, {Name: ""}}, "item 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockGameRepository{
				createBatchFunc: func(ctx context.Context, games []entity.Game) ([]entity.Game, error) {
					t.Fatal("storage must not be touched when any item is invalid")
					return nil, nil
				},
			}

			_, err := NewGamesUsecase(repo).CreateMany(context.Background(), tt.games)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestGamesUsecase_Delete(t *testing.T) {
	var gotID uint
	repo := &mockGameRepository{
		deleteFunc: func(ctx context.Context, id uint) error {
			gotID = id
			return nil
		},
	}

	require.NoError(t, NewGamesUsecase(repo).Delete(context.Background(), 8))
	assert.Equal(t, uint(8), gotID)
}

func TestGamesUsecase_Create_RepositoryError(t *testing.T) {
	repoErr := errors.New("insert failed")
	repo := &mockGameRepository{
		createFunc: func(ctx context.Context, game *entity.Game) error {
			return repoErr
		},
	}

	_, err := NewGamesUsecase(repo).Create(context.Background(), entity.Game{Name: "x"})

	assert.ErrorIs(t, err, repoErr)
}
