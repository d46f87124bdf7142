// Package metrics provides Prometheus metrics collection for the food storage service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// InventoryOperationsTotal counts inventory mutations by operation and outcome.
	InventoryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_operations_total",
			Help: "Total number of inventory operations",
		},
		[]string{"operation", "status"},
	)

	// RecipePreparationsTotal counts recipe preparation attempts by outcome.
	RecipePreparationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_preparations_total",
			Help: "Total number of recipe preparation attempts",
		},
		[]string{"status"},
	)

	// RecipePreparationDuration tracks how long a preparation holds the inventory.
	RecipePreparationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_preparation_duration_seconds",
			Help:    "Recipe preparation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// InventoryLots is the number of stored lots.
	InventoryLots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_lots",
			Help: "Current number of stored ingredient lots",
		},
	)

	// InventoryIngredientTypes is the number of distinct ingredient names stored.
	InventoryIngredientTypes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_ingredient_types",
			Help: "Current number of distinct ingredient names",
		},
	)

	// InventoryValue is the summed price of every stored lot.
	InventoryValue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_value",
			Help: "Total price of all stored lots",
		},
	)

	// CookbookRecipes is the number of stored recipes.
	CookbookRecipes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cookbook_recipes",
			Help: "Current number of stored recipes",
		},
	)

	// CircuitBreakerState reports each breaker's state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordInventoryOperation records the outcome of an add or consume.
func RecordInventoryOperation(operation, status string) {
	InventoryOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordRecipePreparation records metrics for a recipe preparation.
func RecordRecipePreparation(duration time.Duration, status string) {
	RecipePreparationDuration.Observe(duration.Seconds())
	RecipePreparationsTotal.WithLabelValues(status).Inc()
}

// UpdateInventoryMetrics updates the inventory gauges.
func UpdateInventoryMetrics(lots, types int, value float64) {
	InventoryLots.Set(float64(lots))
	InventoryIngredientTypes.Set(float64(types))
	InventoryValue.Set(value)
}

// UpdateCookbookMetrics updates the recipe count gauge.
func UpdateCookbookMetrics(recipes int) {
	CookbookRecipes.Set(float64(recipes))
}

// SetCircuitBreakerState records the current state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
