package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT payload issued by the auth collaborator.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// ErrorResponse is the uniform error body returned by all HTTP handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
