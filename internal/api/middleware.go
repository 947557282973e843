package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"entrena/gym-app/internal/dataaccess"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContextSessionKey is the gin context key the resolved Session lives under.
const ContextSessionKey = "session"

// AuthMiddleware creates a Gin middleware for JWT authentication. On success
// it stores the resolved dataaccess.Session in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.UserID == "" || claims.Role == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid user ID in token")
			return
		}

		c.Set(ContextSessionKey, &dataaccess.Session{
			ID:                  userID,
			Role:                claims.Role,
			OnboardingCompleted: claims.OnboardingCompleted,
			AuthProvider:        "jwt",
		})

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RoleMiddleware creates middleware to check if the user has one of the
// required roles. Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFromContext(c)
		if sess == nil {
			abortWithError(c, http.StatusInternalServerError, "Session not found in context")
			return
		}

		allowed := false
		for _, role := range allowedRoles {
			if sess.Role == role {
				allowed = true
				break
			}
		}

		if !allowed {
			abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: Role '%s' does not have permission", sess.Role))
			return
		}

		c.Next()
	}
}

// sessionFromContext returns the Session resolved by AuthMiddleware, or nil.
func sessionFromContext(c *gin.Context) *dataaccess.Session {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := raw.(*dataaccess.Session)
	if !ok {
		return nil
	}
	return sess
}

// respond maps a data-access envelope onto an HTTP response. Authorization
// failures become 403, store failures 500; everything else is serialized with
// the given success status.
func respond[T any](c *gin.Context, status int, res dataaccess.Result[T]) {
	if !res.Success {
		code := http.StatusInternalServerError
		if res.Error == dataaccess.MsgUnauthorized {
			code = http.StatusForbidden
		}
		c.JSON(code, gin.H{"error": res.Error})
		return
	}
	c.JSON(status, res)
}
