// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /users/register endpoint.
// It uses Gin's binding tags for validation (required, email format, username
// bounds); password strength beyond the minimum length is checked by the usecase.
type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
