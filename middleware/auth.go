package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	UserContextKey = "userID"
	RoleContextKey = "role"
)

// TokenValidator parses bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*services.Claims, error)
}

// AdminLookup confirms that the admin behind a token still exists.
type AdminLookup interface {
	AdminMe(ctx context.Context, adminID uuid.UUID) (*dto.Admin, *services.ServiceError)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return token, token != ""
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": i18n.T(i18n.FromContext(c), "unauthorized"),
	})
}

func setIdentity(c *gin.Context, claims *services.Claims) {
	c.Set(UserContextKey, claims.Subject())
	c.Set(RoleContextKey, claims.Role)
}

// Auth requires a valid storefront access token.
func Auth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			unauthorized(c)
			return
		}
		claims, err := tokens.ValidateToken(raw)
		if err != nil || claims.Role != models.RoleUser {
			unauthorized(c)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and otherwise
// lets the request through anonymously.
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims, err := tokens.ValidateToken(raw); err == nil && claims.Role == models.RoleUser {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// AdminAuth requires an admin token whose admin is still present and active.
func AdminAuth(tokens TokenValidator, admins AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			unauthorized(c)
			return
		}
		claims, err := tokens.ValidateToken(raw)
		if err != nil || claims.Role != models.RoleAdmin {
			unauthorized(c)
			return
		}
		if _, svcErr := admins.AdminMe(c.Request.Context(), claims.Subject()); svcErr != nil {
			if svcErr.StatusCode >= http.StatusInternalServerError {
				c.AbortWithStatusJSON(svcErr.StatusCode, gin.H{
					"message": i18n.T(i18n.FromContext(c), svcErr.Message),
				})
				return
			}
			unauthorized(c)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// CurrentUserID returns the authenticated subject, if any.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(uuid.UUID); ok && id != uuid.Nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

// OptionalUserID is CurrentUserID as a pointer, nil for anonymous requests.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	id, ok := CurrentUserID(c)
	if !ok {
		return nil
	}
	return &id
}
