// Package dto はgamesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "blog_backend/internal/feature/games/domain/entity"

// GameReq represents the JSON body for creating a game.
type GameReq struct {
	Nombre string `json:"nombre" binding:"required"`
	Genero string `json:"genero"`
	Anio   int    `json:"anio"`
}

// GameResponse is the wire shape of a catalog game.
type GameResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
	Genero string `json:"genero"`
	Anio   int    `json:"anio"`
}

// ToEntity converts the request into a domain game.
func (r GameReq) ToEntity() entity.Game {
	return entity.Game{Name: r.Nombre, Genre: r.Genero, Year: r.Anio}
}

// FromGame converts a domain game into its wire shape.
func FromGame(g entity.Game) GameResponse {
	return GameResponse{ID: g.ID, Nombre: g.Name, Genero: g.Genre, Anio: g.Year}
}

// FromGames converts a slice of domain games.
func FromGames(games []entity.Game) []GameResponse {
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, FromGame(g))
	}
	return out
}
