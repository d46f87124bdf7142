package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/food-storage/internal/domain/dto"
	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/i18n"
	"github.com/guttosm/food-storage/internal/middleware"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	resp.Data = nil
	resp.Message = ""
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	resp.Error = ""
	resp.Message = ""
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	resp.Details = nil
	errorResponsePool.Put(resp)
}

// BuildRequest binds and validates the JSON body of c into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ResponseBuilder writes the success and error envelopes.
// Uses sync.Pool for DTO reuse to reduce allocations.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends a successful response with the given data.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.success(statusCode, "", data)
}

// SuccessWithMessage sends data together with a translated confirmation.
func (b *ResponseBuilder) SuccessWithMessage(statusCode int, messageKey string, data interface{}) {
	b.success(statusCode, i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c)), data)
}

func (b *ResponseBuilder) success(statusCode int, message string, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// gin serialises synchronously, so the DTO can go back to the pool right after.
	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error sends an error response with the given status code and message key.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.abort(statusCode, dto.ErrCodeFromStatus(statusCode), messageKey, nil, err)
}

// DomainError maps a pantry failure to its status and error code. The
// domain message goes in details.reason, the translated summary in message.
// notFoundKey, when set, names the missing resource in that summary.
func (b *ResponseBuilder) DomainError(err error, notFoundKey string) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	status, code := dto.StatusFromReason(domainErr.Reason)
	messageKey := messageKeyFor(domainErr.Reason)
	if domainErr.Reason == model.ReasonNotFound && notFoundKey != "" {
		messageKey = notFoundKey
	}
	b.abort(status, code, messageKey, map[string]string{"reason": domainErr.Message}, err)
}

// ValidationError reports a malformed request body.
func (b *ResponseBuilder) ValidationError(err error) {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		messageKey := i18n.ErrKeyInvalidRequestBody
		if validationErr == dto.ErrInvalidExpirationDate {
			messageKey = i18n.ErrKeyInvalidExpirationDate
		}
		b.abort(http.StatusBadRequest, dto.ErrCodeInvalidRequest, messageKey,
			map[string]string{validationErr.Field: validationErr.Message}, err)
		return
	}
	b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

func (b *ResponseBuilder) abort(statusCode int, code, messageKey string, details map[string]string, err error) {
	resp := getErrorResponse()
	resp.Error = code
	resp.Message = i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// The error handler middleware logs context errors.
	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

func messageKeyFor(reason model.Reason) string {
	switch reason {
	case model.ReasonNotFound:
		return i18n.ErrKeyNotFound
	case model.ReasonInsufficientQuantity:
		return i18n.ErrKeyInsufficientQuantity
	default:
		return i18n.ErrKeyInvalidRequest
	}
}
