package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blog_backend/internal/feature/games/domain/entity"
)

// setupTestDB はテスト用にインメモリSQLiteデータベースをセットアップします。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&GameModel{}))
	return db
}

func TestGameGorm_CreateAndFindAll(t *testing.T) {
	repo := NewGameRepository(setupTestDB(t))
	ctx := context.Background()

	game := entity.Game{Name: "Hollow Knight", Genre: "metroidvania", Year: 2017}
	require.NoError(t, repo.Create(ctx, &game))
	require.NotZero(t, game.ID)

	games, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Hollow Knight", games[0].Name)
	assert.Equal(t, "metroidvania", games[0].Genre)
	assert.Equal(t, 2017, games[0].Year)
}

func TestGameGorm_FindAll_Empty(t *testing.T) {
	repo := NewGameRepository(setupTestDB(t))

	games, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestGameGorm_CreateBatch(t *testing.T) {
	repo := NewGameRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateBatch(ctx, []entity.Game{
		{Name: "Celeste", Genre: "platformer", Year: 2018},
		{Name: "Hades", Genre: "roguelike", Year: 2020},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotZero(t, created[0].ID)
	assert.NotZero(t, created[1].ID)

	games, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestGameGorm_Delete(t *testing.T) {
	repo := NewGameRepository(setupTestDB(t))
	ctx := context.Background()

	game := entity.Game{Name: "Borrar", Year: 2000}
	require.NoError(t, repo.Create(ctx, &game))

	require.NoError(t, repo.Delete(ctx, game.ID))

	games, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	// deleting an absent ID is fine
	assert.NoError(t, repo.Delete(ctx, game.ID))
	assert.NoError(t, repo.Delete(ctx, 999))
}
