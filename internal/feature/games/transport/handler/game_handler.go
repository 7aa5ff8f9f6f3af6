// Package handler はgamesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/games/domain/entity"
	"blog_backend/internal/feature/games/transport/http/dto"
	"blog_backend/internal/feature/games/usecase"
)

// GamesUsecase はゲームカタログのユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type GamesUsecase interface {
	List(ctx context.Context) ([]entity.Game, error)
	Create(ctx context.Context, game entity.Game) (*entity.Game, error)
	CreateMany(ctx context.Context, games []entity.Game) ([]entity.Game, error)
	Delete(ctx context.Context, id uint) error
}

// GameHandler はゲームカタログのHTTPリクエストを処理します。
type GameHandler struct {
	uc GamesUsecase
}

// NewGameHandler は新しい GameHandler を作成します。
func NewGameHandler(uc GamesUsecase) *GameHandler {
	return &GameHandler{uc: uc}
}

// List handles GET /juegos.
func (h *GameHandler) List(c *gin.Context) {
	games, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("game listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list games", Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromGames(games))
}

// Create handles POST /juegos.
func (h *GameHandler) Create(c *gin.Context) {
	var req dto.GameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid game data", Detail: err.Error()})
		return
	}

	game, err := h.uc.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.writeGameError(c, err, "failed to create game")
		return
	}
	c.JSON(http.StatusCreated, dto.FromGame(*game))
}

// CreateMany handles POST /juegos/many with a JSON array body.
func (h *GameHandler) CreateMany(c *gin.Context) {
	var reqs []dto.GameReq
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid game data", Detail: "body must be an array of games"})
		return
	}

	games := make([]entity.Game, 0, len(reqs))
	for _, req := range reqs {
		games = append(games, req.ToEntity())
	}

	created, err := h.uc.CreateMany(c.Request.Context(), games)
	if err != nil {
		h.writeGameError(c, err, "failed to create games")
		return
	}
	c.JSON(http.StatusCreated, dto.FromGames(created))
}

// Delete handles DELETE /juegos/:id. Deletion is idempotent: a missing ID
// still answers 204.
func (h *GameHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid game id"})
		return
	}

	if err := h.uc.Delete(c.Request.Context(), uint(id)); err != nil {
		slog.Error("game deletion failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete game", Detail: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) writeGameError(c *gin.Context, err error, label string) {
	if errors.Is(err, usecase.ErrValidation) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid game data", Detail: err.Error()})
		return
	}
	slog.Error(label, "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: label, Detail: err.Error()})
}
