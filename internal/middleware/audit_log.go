// Package middleware provides audit logging utilities.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/service"
)

// AuditLog records a pantry mutation (add, consume, prepare, recipe changes)
// against the request actor. It never blocks the request.
func AuditLog(loggingService service.LoggingService, c *gin.Context, action string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	dispatch(loggingService, newAuditEntry(c, "info", action, message, fields))
}

// AuditLogError records a rejected pantry mutation together with its error.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, action string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newAuditEntry(c, "warn", action, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	dispatch(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level, action, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Actor:     GetActor(c),
		Action:    action,
		Fields:    fields,
	}
}
