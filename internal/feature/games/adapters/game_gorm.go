// Package adapters はgamesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blog_backend/internal/feature/games/domain/entity"
	"blog_backend/internal/feature/games/usecase"
)

// GameModel is the persistence shape of a catalog game.
type GameModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Genre     string `gorm:"size:100"`
	Year      int
	CreatedAt time.Time
}

// TableName returns the table name for GameModel.
func (GameModel) TableName() string {
	return "games"
}

// gameGorm はGameRepositoryインターフェースのGORM実装です。
type gameGorm struct {
	db *gorm.DB
}

var _ usecase.GameRepository = (*gameGorm)(nil)

// NewGameRepository は指定されたDB接続でgameGormリポジトリの新しいインスタンスを生成します。
func NewGameRepository(db *gorm.DB) *gameGorm {
	return &gameGorm{db: db}
}

func toEntity(m GameModel) entity.Game {
	return entity.Game{ID: m.ID, Name: m.Name, Genre: m.Genre, Year: m.Year, CreatedAt: m.CreatedAt}
}

// FindAll returns every game, oldest first.
func (r *gameGorm) FindAll(ctx context.Context) ([]entity.Game, error) {
	var rows []GameModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Game, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Create persists a game and fills in its generated ID.
func (r *gameGorm) Create(ctx context.Context, game *entity.Game) error {
	m := GameModel{Name: game.Name, Genre: game.Genre, Year: game.Year}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	game.ID = m.ID
	game.CreatedAt = m.CreatedAt
	return nil
}

// CreateBatch inserts every game in one statement; GORM runs it in a single
// transaction, so the batch is all-or-nothing.
func (r *gameGorm) CreateBatch(ctx context.Context, games []entity.Game) ([]entity.Game, error) {
	ms := make([]GameModel, 0, len(games))
	for _, g := range games {
		ms = append(ms, GameModel{Name: g.Name, Genre: g.Genre, Year: g.Year})
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Game, 0, len(ms))
	for _, m := range ms {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Delete removes a game by ID. A missing ID is not an error.
func (r *gameGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&GameModel{}, id).Error
}
