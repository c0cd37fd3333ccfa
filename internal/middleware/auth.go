package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key under which the authenticated user id is stored.
const UserIDKey = "user_id"

// JWTAuth creates a gin middleware that verifies the JWT access token issued by
// the auth collaborator. It checks the signature and expiry and stores the user
// id in the request context. Token revocation stays the auth service's concern.
func JWTAuth(secretKey string, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("JWTAuth")
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Authorization header missing"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid Authorization header format"})
			return
		}

		tokenString := parts[1]
		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		})

		if err != nil {
			log.Warn("JWT parsing/validation error", zap.Error(err))
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token has expired"})
			case errors.Is(err, jwt.ErrTokenMalformed):
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token is malformed"})
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token signature is invalid"})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token validation failed"})
			}
			return
		}

		if !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token is invalid"})
			return
		}

		if claims.UserID == uuid.Nil {
			log.Warn("UserID missing in JWT claims")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid token: UserID missing"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserIDFromContext extracts the authenticated user id set by JWTAuth.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
