package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/food-storage/internal/domain/dto"
	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/i18n"
	"github.com/guttosm/food-storage/internal/logger"
)

// ErrorHandler returns a middleware that logs errors attached to the gin
// context. Domain errors are logged as warnings with their reason. If the
// handler wrote nothing, a response matching the error's reason is sent.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)
		reason := model.ReasonOf(err.Err)

		log := logger.Logger()
		event := log.Error()
		if reason != "" {
			event = log.Warn().Str("reason", string(reason))
		}
		event.
			Str("request_id", requestID).
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}

		status, code := dto.StatusFromReason(reason)
		messageKey := i18n.ErrKeyInternalError
		if reason != "" {
			messageKey = i18n.ErrKeyInvalidRequest
		}
		message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
		c.JSON(status, dto.NewError(code, message).WithRequestID(requestID))
	}
}
