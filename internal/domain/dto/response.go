package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/shopspring/decimal"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeInsufficientQuantity indicates the inventory cannot cover a request.
	ErrCodeInsufficientQuantity = "insufficient_quantity"
	// ErrCodeUnavailable indicates an optional backend is disabled or down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// Message is a translated confirmation for mutations (optional)
	Message string `json:"message,omitempty" example:"Recipe prepared"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2026-06-01T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"insufficient_quantity"`
	Message string `json:"message,omitempty" example:"Not enough of the ingredient in storage"`
	// Details contains additional error details (optional)
	// Example: {"reason": "Insufficient quantity available for rice. Available: 1.00 kg"}
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-06-01T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// StatusFromReason maps a domain failure reason to its HTTP status and error code.
func StatusFromReason(reason model.Reason) (int, string) {
	switch reason {
	case model.ReasonInvalidInput:
		return http.StatusBadRequest, ErrCodeInvalidRequest
	case model.ReasonNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case model.ReasonInsufficientQuantity:
		return http.StatusConflict, ErrCodeInsufficientQuantity
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}

// IngredientResponse is a stored lot or a recipe requirement line.
// @Description Ingredient lot
type IngredientResponse struct {
	Name           string  `json:"name" example:"Rice"`
	Amount         float64 `json:"amount" example:"1.5"`
	Unit           string  `json:"unit" example:"kg"`
	Price          float64 `json:"price" example:"4.2"`
	ExpirationDate string  `json:"expiration_date" example:"2026-12-31"`
	Expired        bool    `json:"expired"`
} // @name IngredientResponse

// NewIngredientResponse renders a lot, flagging it expired relative to today.
func NewIngredientResponse(ingredient *model.Ingredient, today time.Time) IngredientResponse {
	return IngredientResponse{
		Name:           ingredient.Name(),
		Amount:         ingredient.Amount(),
		Unit:           ingredient.Unit(),
		Price:          ingredient.Price().InexactFloat64(),
		ExpirationDate: ingredient.ExpirationDate().Format(model.DateLayout),
		Expired:        ingredient.IsExpired(today),
	}
}

// NewIngredientResponses renders a list of lots, never returning nil.
func NewIngredientResponses(ingredients []*model.Ingredient, today time.Time) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, NewIngredientResponse(ingredient, today))
	}
	return out
}

// RecipeLineResponse is one requirement line of a recipe.
type RecipeLineResponse struct {
	Name   string  `json:"name" example:"Flour"`
	Amount float64 `json:"amount" example:"200"`
	Unit   string  `json:"unit" example:"g"`
} // @name RecipeLineResponse

// RecipeResponse is a stored recipe.
// @Description Recipe
type RecipeResponse struct {
	Name         string               `json:"name" example:"Pancakes"`
	Description  string               `json:"description" example:"Fluffy breakfast pancakes"`
	Instructions string               `json:"instructions" example:"Mix everything and fry"`
	Servings     int                  `json:"servings" example:"4"`
	Ingredients  []RecipeLineResponse `json:"ingredients"`
} // @name RecipeResponse

// NewRecipeResponse renders a recipe and its requirement lines in insertion order.
func NewRecipeResponse(recipe *model.Recipe) RecipeResponse {
	lines := recipe.Ingredients()
	resp := RecipeResponse{
		Name:         recipe.Name(),
		Description:  recipe.Description(),
		Instructions: recipe.Instructions(),
		Servings:     recipe.Servings(),
		Ingredients:  make([]RecipeLineResponse, 0, len(lines)),
	}
	for _, line := range lines {
		resp.Ingredients = append(resp.Ingredients, RecipeLineResponse{
			Name:   line.Name(),
			Amount: line.Amount(),
			Unit:   line.Unit(),
		})
	}
	return resp
}

// NewRecipeResponses renders a list of recipes, never returning nil.
func NewRecipeResponses(recipes []*model.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, NewRecipeResponse(recipe))
	}
	return out
}

// InventorySummaryResponse aggregates the pantry contents.
// @Description Inventory and cookbook counters
type InventorySummaryResponse struct {
	IngredientTypes int     `json:"ingredient_types" example:"3"`
	Lots            int     `json:"lots" example:"5"`
	ExpiredLots     int     `json:"expired_lots" example:"1"`
	Recipes         int     `json:"recipes" example:"2"`
	TotalValue      float64 `json:"total_value" example:"18.75"`
	Today           string  `json:"today" example:"2026-06-01"`
} // @name InventorySummaryResponse

// NewInventorySummaryResponse converts the summary counters.
func NewInventorySummaryResponse(ingredientTypes, lots, expiredLots, recipes int, totalValue decimal.Decimal, today time.Time) InventorySummaryResponse {
	return InventorySummaryResponse{
		IngredientTypes: ingredientTypes,
		Lots:            lots,
		ExpiredLots:     expiredLots,
		Recipes:         recipes,
		TotalValue:      totalValue.Round(2).InexactFloat64(),
		Today:           today.Format(model.DateLayout),
	}
}

// AvailabilityResponse reports whether a recipe can be prepared now.
// @Description Recipe availability
type AvailabilityResponse struct {
	Recipe     string `json:"recipe" example:"Pancakes"`
	CanPrepare bool   `json:"can_prepare" example:"true"`
} // @name AvailabilityResponse

// ConsumeResponse reports what is left of an ingredient after consumption.
// @Description Result of a consumption
type ConsumeResponse struct {
	Name      string               `json:"name" example:"Rice"`
	Consumed  float64              `json:"consumed" example:"0.5"`
	Remaining []IngredientResponse `json:"remaining"`
} // @name ConsumeResponse

// PreparationResponse is returned after a recipe is cooked.
// @Description Prepared recipe and the inventory left afterwards
type PreparationResponse struct {
	Recipe    RecipeResponse           `json:"recipe"`
	Inventory InventorySummaryResponse `json:"inventory"`
} // @name PreparationResponse

// AuditLogResponse is one stored audit or request log entry.
type AuditLogResponse struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level" example:"info"`
	Message   string                 `json:"message"`
	RequestID string                 `json:"request_id,omitempty"`
	Actor     string                 `json:"actor,omitempty"`
	Action    string                 `json:"action,omitempty" example:"prepare_recipe"`
	Path      string                 `json:"path,omitempty"`
	Status    int                    `json:"status_code,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty" swaggertype:"object"`
} // @name AuditLogResponse

// AuditLogsResponse is a page of audit entries.
// @Description Page of audit log entries, newest first
type AuditLogsResponse struct {
	Entries []AuditLogResponse `json:"entries"`
	Total   int64              `json:"total" example:"42"`
	Limit   int                `json:"limit" example:"50"`
	Skip    int                `json:"skip" example:"0"`
} // @name AuditLogsResponse

// NewAuditLogsResponse converts a page of log entries.
func NewAuditLogsResponse(entries []model.LogEntry, total int64, limit, skip int) AuditLogsResponse {
	resp := AuditLogsResponse{
		Entries: make([]AuditLogResponse, 0, len(entries)),
		Total:   total,
		Limit:   limit,
		Skip:    skip,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, AuditLogResponse{
			ID:        e.ID.Hex(),
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Message:   e.Message,
			RequestID: e.RequestID,
			Actor:     e.Actor,
			Action:    e.Action,
			Path:      e.Path,
			Status:    e.StatusCode,
			Fields:    e.Fields,
		})
	}
	return resp
}
