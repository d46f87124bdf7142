// Package i18n provides internationalization support for the food storage service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			ErrKeyInvalidRequest:        "Invalid request",
			ErrKeyInvalidRequestBody:    "Invalid request body",
			ErrKeyInternalError:         "An unexpected error occurred",
			ErrKeyUnauthorized:          "Unauthorized",
			ErrKeyAPIKeyRequired:        "API key is required",
			ErrKeyInvalidAPIKey:         "Invalid API key",
			ErrKeyNotFound:              "Not found",
			ErrKeyRateLimitExceeded:     "Too many requests, please try again later",
			ErrKeyConflict:              "Conflict",
			ErrKeyInvalidToken:          "Invalid or expired token",
			ErrKeyTokenRequired:         "Authentication token is required",
			ErrKeyUnavailable:           "Service unavailable",
			ErrKeyInsufficientQuantity:  "Not enough of the ingredient in storage",
			ErrKeyIngredientNotFound:    "Ingredient not found in storage",
			ErrKeyRecipeNotFound:        "Recipe not found",
			ErrKeyInvalidExpirationDate: "expiration_date: must be a date formatted as YYYY-MM-DD, today or later",
			ErrKeyInvalidQuery:          "Invalid query parameter",

			// Success messages
			SuccessKeyIngredientAdded:    "Ingredient stored",
			SuccessKeyIngredientConsumed: "Ingredient consumed",
			SuccessKeyRecipeSaved:        "Recipe saved",
			SuccessKeyRecipeRemoved:      "Recipe removed",
			SuccessKeyRecipePrepared:     "Recipe prepared",
		},
		"pt": {
			// Error messages
			ErrKeyInvalidRequest:        "Requisição inválida",
			ErrKeyInvalidRequestBody:    "Corpo da requisição inválido",
			ErrKeyInternalError:         "Ocorreu um erro inesperado",
			ErrKeyUnauthorized:          "Não autorizado",
			ErrKeyAPIKeyRequired:        "Chave de API é obrigatória",
			ErrKeyInvalidAPIKey:         "Chave de API inválida",
			ErrKeyNotFound:              "Não encontrado",
			ErrKeyRateLimitExceeded:     "Muitas requisições, tente novamente mais tarde",
			ErrKeyConflict:              "Conflito",
			ErrKeyInvalidToken:          "Token inválido ou expirado",
			ErrKeyTokenRequired:         "Token de autenticação é obrigatório",
			ErrKeyUnavailable:           "Serviço indisponível",
			ErrKeyInsufficientQuantity:  "Quantidade insuficiente do ingrediente no estoque",
			ErrKeyIngredientNotFound:    "Ingrediente não encontrado no estoque",
			ErrKeyRecipeNotFound:        "Receita não encontrada",
			ErrKeyInvalidExpirationDate: "expiration_date: deve ser uma data no formato AAAA-MM-DD, hoje ou depois",
			ErrKeyInvalidQuery:          "Parâmetro de consulta inválido",

			// Success messages
			SuccessKeyIngredientAdded:    "Ingrediente armazenado",
			SuccessKeyIngredientConsumed: "Ingrediente consumido",
			SuccessKeyRecipeSaved:        "Receita salva",
			SuccessKeyRecipeRemoved:      "Receita removida",
			SuccessKeyRecipePrepared:     "Receita preparada",
		},
		"nl": {
			// Error messages
			ErrKeyInvalidRequest:        "Ongeldig verzoek",
			ErrKeyInvalidRequestBody:    "Ongeldige aanvraag body",
			ErrKeyInternalError:         "Er is een onverwachte fout opgetreden",
			ErrKeyUnauthorized:          "Niet geautoriseerd",
			ErrKeyAPIKeyRequired:        "API-sleutel is vereist",
			ErrKeyInvalidAPIKey:         "Ongeldige API-sleutel",
			ErrKeyNotFound:              "Niet gevonden",
			ErrKeyRateLimitExceeded:     "Te veel verzoeken, probeer het later opnieuw",
			ErrKeyConflict:              "Conflict",
			ErrKeyInvalidToken:          "Ongeldig of verlopen token",
			ErrKeyTokenRequired:         "Authenticatietoken is vereist",
			ErrKeyUnavailable:           "Dienst niet beschikbaar",
			ErrKeyInsufficientQuantity:  "Onvoldoende voorraad van het ingrediënt",
			ErrKeyIngredientNotFound:    "Ingrediënt niet gevonden in de voorraad",
			ErrKeyRecipeNotFound:        "Recept niet gevonden",
			ErrKeyInvalidExpirationDate: "expiration_date: moet een datum zijn in het formaat JJJJ-MM-DD, vandaag of later",
			ErrKeyInvalidQuery:          "Ongeldige queryparameter",

			// Success messages
			SuccessKeyIngredientAdded:    "Ingrediënt opgeslagen",
			SuccessKeyIngredientConsumed: "Ingrediënt verbruikt",
			SuccessKeyRecipeSaved:        "Recept opgeslagen",
			SuccessKeyRecipeRemoved:      "Recept verwijderd",
			SuccessKeyRecipePrepared:     "Recept bereid",
		},
	}
}
