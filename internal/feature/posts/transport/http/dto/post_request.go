// Package dto はpostsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "time"

// CreatePostReq represents the JSON body for creating a post. The wire field
// names are the Spanish ones clients already send (titulo/contenido/autor/
// etiquetas/fecha).
type CreatePostReq struct {
	Titulo    string     `json:"titulo" binding:"required"`
	Contenido string     `json:"contenido" binding:"required"`
	Autor     string     `json:"autor" binding:"required"`
	Etiquetas []string   `json:"etiquetas"`
	Fecha     *time.Time `json:"fecha"`
}

// UpdatePostReq represents the JSON body for a partial update. Nil pointers
// mean "leave the field untouched"; unknown body keys are ignored.
type UpdatePostReq struct {
	Titulo       *string   `json:"titulo"`
	Contenido    *string   `json:"contenido"`
	Autor        *string   `json:"autor"`
	Etiquetas    *[]string `json:"etiquetas"`
	BorrarImagen bool      `json:"borrar_imagen"`
}
