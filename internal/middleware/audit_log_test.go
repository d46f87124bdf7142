package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// captureEntries records every entry written through CreateLog.
func captureEntries(m *mocks.MockLoggingService) chan *model.LogEntry {
	ch := make(chan *model.LogEntry, 10)
	m.On("CreateLog", mock.Anything, mock.AnythingOfType("*model.LogEntry")).
		Run(func(args mock.Arguments) {
			ch <- args.Get(1).(*model.LogEntry)
		}).
		Return(nil)
	return ch
}

func awaitEntry(t *testing.T, ch chan *model.LogEntry) *model.LogEntry {
	t.Helper()
	select {
	case entry := <-ch:
		return entry
	case <-time.After(time.Second):
		require.FailNow(t, "no log entry written")
		return nil
	}
}

func TestAuditLog(t *testing.T) {
	tests := []struct {
		name      string
		actor     string
		action    string
		fields    map[string]interface{}
		wantActor string
	}{
		{
			name:      "records the authenticated actor",
			actor:     "jwt:cook",
			action:    model.ActionConsumeIngredient,
			fields:    map[string]interface{}{"ingredient": "Rice", "amount": 0.5},
			wantActor: "jwt:cook",
		},
		{
			name:      "anonymous when no auth ran",
			action:    model.ActionAddRecipe,
			wantActor: "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLogging := new(mocks.MockLoggingService)
			entries := captureEntries(mockLogging)

			router := gin.New()
			router.Use(RequestID())
			router.POST("/api/test", func(c *gin.Context) {
				if tt.actor != "" {
					c.Set(ActorKey, tt.actor)
				}
				AuditLog(mockLogging, c, tt.action, "Pantry changed", tt.fields)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/test", nil))
			require.Equal(t, http.StatusOK, w.Code)

			entry := awaitEntry(t, entries)
			assert.Equal(t, tt.action, entry.Action)
			assert.Equal(t, tt.wantActor, entry.Actor)
			assert.Equal(t, "info", entry.Level)
			assert.Equal(t, "Pantry changed", entry.Message)
			assert.Equal(t, http.MethodPost, entry.Method)
			assert.Equal(t, "/api/test", entry.Path)
			assert.NotEmpty(t, entry.RequestID)
			assert.Equal(t, tt.fields, entry.Fields)
		})
	}
}

func TestAuditLog_NilService(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	assert.NotPanics(t, func() {
		AuditLog(nil, c, model.ActionAddIngredient, "ignored", nil)
		AuditLogError(nil, c, model.ActionAddIngredient, "ignored", assert.AnError, nil)
	})
}

func TestAuditLogError(t *testing.T) {
	mockLogging := new(mocks.MockLoggingService)
	entries := captureEntries(mockLogging)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/recipes/soup/prepare", nil)
	c.Set(ActorKey, "api-key:abc…")

	AuditLogError(mockLogging, c, model.ActionPrepareRecipe, "Recipe preparation rejected",
		model.InsufficientQuantity("Not enough ingredients"), map[string]interface{}{"recipe": "soup"})

	entry := awaitEntry(t, entries)
	assert.Equal(t, "warn", entry.Level)
	assert.Equal(t, model.ActionPrepareRecipe, entry.Action)
	assert.Equal(t, "Not enough ingredients", entry.Error)
	assert.Equal(t, "api-key:abc…", entry.Actor)
}

func TestAuditLog_UsesAsyncLogger(t *testing.T) {
	mockLogging := new(mocks.MockLoggingService)
	batches := make(chan []*model.LogEntry, 1)
	mockLogging.On("CreateLogs", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			batches <- args.Get(1).([]*model.LogEntry)
		}).
		Return(nil)

	InitAsyncLogger(mockLogging, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 10, FlushInterval: time.Hour, WriteTimeout: time.Second})

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/ingredients", nil)
	AuditLog(mockLogging, c, model.ActionAddIngredient, "Ingredient stored", nil)

	StopAsyncLogger()

	batch := <-batches
	require.Len(t, batch, 1)
	assert.Equal(t, model.ActionAddIngredient, batch[0].Action)
	mockLogging.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
}
