// Package api は各フィーチャーのトランスポート層で共有されるレスポンス型を定義します。
package api

// ErrorResponse is the common error payload.
// Detail carries a human-readable explanation alongside the short error
// label; it is omitted when empty.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detalle,omitempty"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"mensaje"`
}

// TokenResponse carries a freshly issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
}
