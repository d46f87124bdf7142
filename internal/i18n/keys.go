// Package i18n provides internationalization support for the food storage service.
package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyUnavailable        = "error.service_unavailable"

	// ErrKeyInsufficientQuantity indicates the inventory cannot cover a consume or prepare request.
	ErrKeyInsufficientQuantity = "error.insufficient_quantity"
	// ErrKeyIngredientNotFound indicates no ingredient with the requested name is stored.
	ErrKeyIngredientNotFound = "error.ingredient_not_found"
	// ErrKeyRecipeNotFound indicates no recipe with the requested name exists.
	ErrKeyRecipeNotFound = "error.recipe_not_found"
	// ErrKeyInvalidExpirationDate indicates a malformed or past expiration date.
	ErrKeyInvalidExpirationDate = "error.validation.expiration_date"
	// ErrKeyInvalidQuery indicates a malformed query string parameter.
	ErrKeyInvalidQuery = "error.validation.query"
)

// Success message translation keys.
const (
	SuccessKeyIngredientAdded    = "success.ingredient_added"
	SuccessKeyIngredientConsumed = "success.ingredient_consumed"
	SuccessKeyRecipeSaved        = "success.recipe_saved"
	SuccessKeyRecipeRemoved      = "success.recipe_removed"
	SuccessKeyRecipePrepared     = "success.recipe_prepared"
)
