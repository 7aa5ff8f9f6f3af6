// Package handler はpostsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/transport/http/dto"
	"blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/upload"
)

// PostsUsecase は投稿操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type PostsUsecase interface {
	List(ctx context.Context, query string, page, limit int) (*entity.PostPage, error)
	Get(ctx context.Context, id uint) (*entity.Post, error)
	Create(ctx context.Context, in usecase.CreatePostInput) (*entity.Post, error)
	CreateMany(ctx context.Context, inputs []usecase.CreatePostInput) ([]entity.Post, error)
	Update(ctx context.Context, id uint, patch usecase.PostPatch) (*entity.Post, error)
	Delete(ctx context.Context, id uint) error
}

// ImageStore stores an uploaded file part and reports its public metadata.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (*upload.StoredFile, error)
}

// PostHandler handles the HTTP surface of the posts resource.
type PostHandler struct {
	uc     PostsUsecase
	images ImageStore
}

// NewPostHandler はPostHandlerの新しいインスタンスを生成します。
func NewPostHandler(uc PostsUsecase, images ImageStore) *PostHandler {
	return &PostHandler{uc: uc, images: images}
}

// List handles GET /posts?page&limit&q.
// Non-numeric page/limit fall back to their defaults; the usecase clamps the
// rest. Responds with the page items plus pagination metadata.
func (h *PostHandler) List(c *gin.Context) {
	page := atoiOrZero(c.Query("page"))
	limit := atoiOrZero(c.Query("limit"))
	q := c.Query("q")

	result, err := h.uc.List(c.Request.Context(), q, page, limit)
	if err != nil {
		slog.Error("post listing failed", "error", err, "query", q)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list posts", Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.PostListResponse{
		Items: dto.FromPosts(result.Items),
		Total: result.Total,
		Page:  result.Page,
		Pages: result.Pages,
	})
}

// Get handles GET /posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found", Detail: "no post with id " + c.Param("id")})
			return
		}
		slog.Error("post lookup failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get post", Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromPost(*post))
}

// Create handles POST /posts.
// Accepts either a JSON body or a multipart form with an optional file part
// named "imagen"; the stored upload metadata is merged into the new post.
func (h *PostHandler) Create(c *gin.Context) {
	var (
		in  usecase.CreatePostInput
		ok  bool
		img *entity.ImageRef
	)

	if isMultipart(c) {
		in, ok = h.bindCreateForm(c)
		if !ok {
			return
		}
		img, ok = h.saveImagePart(c)
		if !ok {
			return
		}
		in.Image = img
	} else {
		var req dto.CreatePostReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post data", Detail: err.Error()})
			return
		}
		in = fromCreateReq(req)
	}

	post, err := h.uc.Create(c.Request.Context(), in)
	if err != nil {
		h.writePostError(c, err, "failed to create post")
		return
	}

	slog.Info("post created", "id", post.ID, "title", post.Title)
	c.JSON(http.StatusCreated, dto.FromPost(*post))
}

// CreateMany handles POST /posts/many with a JSON array body.
// Validation failure on any item rejects the whole batch; nothing is
// persisted unless every item is persisted.
func (h *PostHandler) CreateMany(c *gin.Context) {
	var reqs []dto.CreatePostReq
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post data", Detail: "body must be an array of posts"})
		return
	}

	inputs := make([]usecase.CreatePostInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, fromCreateReq(req))
	}

	posts, err := h.uc.CreateMany(c.Request.Context(), inputs)
	if err != nil {
		h.writePostError(c, err, "failed to create posts")
		return
	}

	slog.Info("post batch created", "count", len(posts))
	c.JSON(http.StatusCreated, dto.FromPosts(posts))
}

// Update handles PUT /posts/:id.
// Despite the verb, semantics are sparse: only supplied fields change.
// A multipart file part named "imagen" replaces the image; the flag
// borrar_imagen=true clears it and wins over a new image in the same call.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var patch usecase.PostPatch
	if isMultipart(c) {
		patch, ok = h.bindUpdateForm(c)
		if !ok {
			return
		}
		img, ok := h.saveImagePart(c)
		if !ok {
			return
		}
		patch.Image = img
	} else {
		var req dto.UpdatePostReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post data", Detail: err.Error()})
			return
		}
		patch = usecase.PostPatch{
			Title:      req.Titulo,
			Content:    req.Contenido,
			Author:     req.Autor,
			Tags:       req.Etiquetas,
			ClearImage: req.BorrarImagen,
		}
	}

	post, err := h.uc.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found", Detail: "no post with id " + c.Param("id")})
			return
		}
		h.writePostError(c, err, "failed to update post")
		return
	}

	slog.Info("post updated", "id", id)
	c.JSON(http.StatusOK, dto.FromPost(*post))
}

// Delete handles DELETE /posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found", Detail: "no post with id " + c.Param("id")})
			return
		}
		slog.Error("post deletion failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete post", Detail: err.Error()})
		return
	}

	slog.Info("post deleted", "id", id)
	c.JSON(http.StatusOK, dto.DeletePostResponse{Mensaje: "post deleted", ID: id})
}

// postID parses the :id route parameter, writing a 400 response on failure.
func (h *PostHandler) postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post id", Detail: c.Param("id") + " is not a valid id"})
		return 0, false
	}
	return uint(id), true
}

// bindCreateForm reads the post fields from a multipart form.
func (h *PostHandler) bindCreateForm(c *gin.Context) (usecase.CreatePostInput, bool) {
	in := usecase.CreatePostInput{
		Title:   c.PostForm("titulo"),
		Content: c.PostForm("contenido"),
		Author:  c.PostForm("autor"),
	}

	if vals, ok := c.GetPostFormArray("etiquetas"); ok {
		tags, err := parseTagValues(vals)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post data", Detail: "etiquetas must be an array of strings"})
			return in, false
		}
		in.Tags = tags
	}

	if v := c.PostForm("fecha"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post data", Detail: "fecha must be an RFC 3339 timestamp"})
			return in, false
		}
		in.PublishedAt = ts
	}

	return in, true
}

// bindUpdateForm reads the patch fields from a multipart form, distinguishing
// absent fields from empty ones.
func (h *PostHandler) bindUpdateForm(c *gin.Context) (usecase.PostPatch, bool) {
	var patch usecase.PostPatch

	if v, ok := c.GetPostForm("titulo"); ok {
		patch.Title = &v
	}
	if v, ok := c.GetPostForm("contenido"); ok {
		patch.Content = &v
	}
	if v, ok := c.GetPostForm("autor"); ok {
		patch.Author = &v
	}
	if vals, ok := c.GetPostFormArray("etiquetas"); ok {
		tags, err := parseTagValues(vals)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post data", Detail: "etiquetas must be an array of strings"})
			return patch, false
		}
		patch.Tags = &tags
	}
	if c.PostForm("borrar_imagen") == "true" {
		patch.ClearImage = true
	}

	return patch, true
}

// saveImagePart stores the optional "imagen" file part. A missing part is not
// an error; upload failures are mapped to 415/413/500.
func (h *PostHandler) saveImagePart(c *gin.Context) (*entity.ImageRef, bool) {
	fh, err := c.FormFile("imagen")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid upload", Detail: err.Error()})
		return nil, false
	}

	stored, err := h.images.Save(fh)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrUnsupportedMediaType):
			c.JSON(http.StatusUnsupportedMediaType, api.ErrorResponse{Error: "unsupported image type", Detail: err.Error()})
		case errors.Is(err, upload.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "image too large", Detail: err.Error()})
		default:
			slog.Error("upload storage failed", "error", err, "filename", fh.Filename)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to store image", Detail: err.Error()})
		}
		return nil, false
	}

	return &entity.ImageRef{URL: stored.Path, MIME: stored.MIME, Name: stored.OriginalName}, true
}

// writePostError maps usecase errors to HTTP responses.
func (h *PostHandler) writePostError(c *gin.Context, err error, label string) {
	if errors.Is(err, usecase.ErrValidation) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post data", Detail: err.Error()})
		return
	}
	slog.Error(label, "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: label, Detail: err.Error()})
}

func fromCreateReq(req dto.CreatePostReq) usecase.CreatePostInput {
	in := usecase.CreatePostInput{
		Title:   req.Titulo,
		Content: req.Contenido,
		Author:  req.Autor,
		Tags:    req.Etiquetas,
	}
	if req.Fecha != nil {
		in.PublishedAt = *req.Fecha
	}
	return in
}

// parseTagValues accepts tags either as repeated form fields or as a single
// JSON-encoded array value.
func parseTagValues(vals []string) ([]string, error) {
	if len(vals) == 1 && strings.HasPrefix(strings.TrimSpace(vals[0]), "[") {
		var tags []string
		if err := json.Unmarshal([]byte(vals[0]), &tags); err != nil {
			return nil, err
		}
		return tags, nil
	}
	return vals, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
