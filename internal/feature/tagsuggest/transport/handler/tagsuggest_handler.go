// Package handler はtagsuggestフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/tagsuggest/domain/entity"
)

// TagSuggestUsecase は画像タグ提案・サマリー生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TagSuggestUsecase interface {
	SuggestTags(ctx context.Context, imageData []byte) ([]entity.TagSuggestion, error)
	SummarizeContent(ctx context.Context, content string) (*entity.Summary, error)
}

// SuggestTagsResponse is one suggested tag on the wire.
type SuggestTagsResponse struct {
	Etiqueta   string  `json:"etiqueta"`
	Confidence float32 `json:"confidence"`
}

// SummaryRequest is the body for POST /suggest/summary.
type SummaryRequest struct {
	Contenido string `json:"contenido" binding:"required"`
}

// SummaryResponse carries the generated summary.
type SummaryResponse struct {
	Resumen string `json:"resumen"`
}

// TagSuggestHandler はタグ提案・サマリー生成のHTTPリクエストを処理します。
type TagSuggestHandler struct {
	uc TagSuggestUsecase
}

// NewTagSuggestHandler はTagSuggestHandlerの新しいインスタンスを生成します。
func NewTagSuggestHandler(uc TagSuggestUsecase) *TagSuggestHandler {
	return &TagSuggestHandler{uc: uc}
}

// SuggestTags は画像をアップロードしてタグ候補を返します。
//
// エンドポイント: POST /suggest/tags
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大5MB）
func (h *TagSuggestHandler) SuggestTags(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("image file missing from tag suggestion request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded image", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	tags, err := h.uc.SuggestTags(c.Request.Context(), imageData)
	if err != nil {
		slog.Error("tag suggestion failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "tag suggestion failed"})
		return
	}

	out := make([]SuggestTagsResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, SuggestTagsResponse{Etiqueta: t.Label, Confidence: t.Confidence})
	}
	c.JSON(http.StatusOK, out)
}

// Summarize は投稿本文のサマリーを生成します。
//
// エンドポイント: POST /suggest/summary
// Content-Type: application/json
func (h *TagSuggestHandler) Summarize(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("summary request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "contenido is required"})
		return
	}

	summary, err := h.uc.SummarizeContent(c.Request.Context(), req.Contenido)
	if err != nil {
		slog.Error("summary generation failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "summary generation failed"})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Resumen: summary.Text})
}
