package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/company-tracker-api/internal/errors"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

// TokenVerifier verifies bearer tokens of an expected kind.
type TokenVerifier interface {
	Verify(raw string, kind services.TokenKind) (*services.Claims, error)
}

// RequireAuth admits requests carrying a valid session token
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return requireToken(tokens, services.TokenSession)
}

// RequireTemporaryToken admits requests carrying a valid temporary login token
func RequireTemporaryToken(tokens TokenVerifier) gin.HandlerFunc {
	return requireToken(tokens, services.TokenTemporary)
}

func requireToken(tokens TokenVerifier, kind services.TokenKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, apierrors.ErrCodeMissingCredential, "Authorization header required")
			return
		}

		scheme, token, _ := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			apierrors.Unauthorized(c, apierrors.ErrCodeMalformedCredential, "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := tokens.Verify(token, kind)
		if err != nil {
			if errors.Is(err, services.ErrWrongTokenKind) {
				apierrors.Unauthorized(c, apierrors.ErrCodeWrongTokenKind, "Token kind not accepted here")
				return
			}
			apierrors.Unauthorized(c, apierrors.ErrCodeInvalidCredential, "Invalid or expired token")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	return uint64FromContext(c, constants.ContextKeyUserID)
}

func uint64FromContext(c *gin.Context, key string) (uint64, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
