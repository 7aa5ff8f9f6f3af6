package dto

import (
	"time"

	"blog_backend/internal/feature/posts/domain/entity"
)

// PostResponse is the wire shape of a single post. The image fields are
// flattened and null together when the post carries no image.
type PostResponse struct {
	ID         uint      `json:"id"`
	Titulo     string    `json:"titulo"`
	Contenido  string    `json:"contenido"`
	Autor      string    `json:"autor"`
	Fecha      time.Time `json:"fecha"`
	Etiquetas  []string  `json:"etiquetas"`
	ImagenURL  *string   `json:"imagen_url"`
	ImagenMime *string   `json:"imagen_mime"`
	ImagenNom  *string   `json:"imagen_nom"`
}

// PostListResponse is the pagination envelope for GET /posts.
type PostListResponse struct {
	Items []PostResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}

// DeletePostResponse acknowledges a deletion.
type DeletePostResponse struct {
	Mensaje string `json:"mensaje"`
	ID      uint   `json:"id"`
}

// FromPost converts a domain post into its wire shape.
func FromPost(p entity.Post) PostResponse {
	out := PostResponse{
		ID:        p.ID,
		Titulo:    p.Title,
		Contenido: p.Content,
		Autor:     p.Author,
		Fecha:     p.PublishedAt,
		Etiquetas: p.Tags,
	}
	if out.Etiquetas == nil {
		out.Etiquetas = []string{}
	}
	if p.Image != nil {
		out.ImagenURL = &p.Image.URL
		out.ImagenMime = &p.Image.MIME
		out.ImagenNom = &p.Image.Name
	}
	return out
}

// FromPosts converts a slice of domain posts.
func FromPosts(posts []entity.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, FromPost(p))
	}
	return out
}
