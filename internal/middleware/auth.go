package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/food-storage/internal/domain/dto"
	"github.com/guttosm/food-storage/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
	// ActorKey is the context key holding who issued the request.
	ActorKey = "actor"

	// anonymousActor is recorded when no credentials were checked.
	anonymousActor = "anonymous"
	// actorKeyPrefixLen is how much of an API key ends up in audit entries.
	actorKeyPrefixLen = 6
)

// APIKeyAuth returns a middleware that validates API keys.
// It checks the X-API-Key header first, then falls back to api_key query parameter.
// If validKeys is nil or empty, authentication is disabled.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		if key == "" {
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !validKeys[key] {
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(ActorKey, "api-key:"+redactKey(key))
		c.Next()
	}
}

// GetActor returns the identity recorded by the auth middleware, or "anonymous".
func GetActor(c *gin.Context) string {
	if actor, ok := c.Get(ActorKey); ok {
		if s, ok := actor.(string); ok && s != "" {
			return s
		}
	}
	return anonymousActor
}

func redactKey(key string) string {
	if len(key) <= actorKeyPrefixLen {
		return key
	}
	return key[:actorKeyPrefixLen] + "…"
}

func abortUnauthorized(c *gin.Context, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}
