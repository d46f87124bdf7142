package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockLogsRepository struct {
	mock.Mock
}

func (m *MockLogsRepository) Create(ctx context.Context, entry *repository.LogEntryDocument) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLogsRepository) CreateMany(ctx context.Context, entries []*repository.LogEntryDocument) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLogsRepository) Query(ctx context.Context, opts repository.LogQueryOptions) ([]*repository.LogEntryDocument, error) {
	args := m.Called(ctx, opts)
	docs, _ := args.Get(0).([]*repository.LogEntryDocument)
	return docs, args.Error(1)
}

func (m *MockLogsRepository) Count(ctx context.Context, opts repository.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

func TestLoggingService_CreateLog(t *testing.T) {
	fixed := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	existingID := primitive.NewObjectID()

	tests := []struct {
		name      string
		entry     *model.LogEntry
		repoErr   error
		verifyDoc func(t *testing.T, doc *repository.LogEntryDocument)
	}{
		{
			name: "assigns id and timestamp",
			entry: (&model.LogEntry{Level: "info", Message: "Audit", Action: model.ActionAddIngredient, Actor: "svc"}).
				WithField("ingredient", "Rice"),
			verifyDoc: func(t *testing.T, doc *repository.LogEntryDocument) {
				assert.False(t, doc.ID.IsZero())
				assert.Equal(t, fixed, doc.Timestamp)
				assert.Equal(t, model.ActionAddIngredient, doc.Action)
				assert.Equal(t, "svc", doc.Actor)
				assert.Equal(t, "Rice", doc.Fields["ingredient"])
			},
		},
		{
			name:  "keeps existing id",
			entry: &model.LogEntry{ID: existingID, Level: "info", Message: "HTTP request"},
			verifyDoc: func(t *testing.T, doc *repository.LogEntryDocument) {
				assert.Equal(t, existingID, doc.ID)
			},
		},
		{
			name:    "propagates repository error",
			entry:   &model.LogEntry{Level: "error"},
			repoErr: errors.New("write failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogsRepository)
			var captured *repository.LogEntryDocument
			repo.On("Create", mock.Anything, mock.AnythingOfType("*repository.LogEntryDocument")).
				Run(func(args mock.Arguments) {
					captured = args.Get(1).(*repository.LogEntryDocument)
				}).
				Return(tt.repoErr)
			svc := &LoggingServiceImpl{repo: repo, now: func() time.Time { return fixed }}

			err := svc.CreateLog(context.Background(), tt.entry)

			if tt.repoErr != nil {
				assert.ErrorIs(t, err, tt.repoErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, captured)
			tt.verifyDoc(t, captured)
			repo.AssertExpectations(t)
		})
	}
}

func TestLoggingService_CreateLogs(t *testing.T) {
	t.Run("empty batch skips the repository", func(t *testing.T) {
		repo := new(MockLogsRepository)
		svc := NewLoggingService(repo)

		require.NoError(t, svc.CreateLogs(context.Background(), nil))
		repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
	})

	t.Run("converts every entry", func(t *testing.T) {
		repo := new(MockLogsRepository)
		repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(docs []*repository.LogEntryDocument) bool {
			return len(docs) == 2 && docs[1].Action == model.ActionPrepareRecipe
		})).Return(nil)
		svc := NewLoggingService(repo)

		err := svc.CreateLogs(context.Background(), []*model.LogEntry{
			{Level: "info", Action: model.ActionConsumeIngredient},
			{Level: "info", Action: model.ActionPrepareRecipe},
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestLoggingService_QueryLogs(t *testing.T) {
	tests := []struct {
		name      string
		opts      model.LogQueryOptions
		wantLimit int
		docs      []*repository.LogEntryDocument
		repoErr   error
	}{
		{
			name:      "default page size",
			opts:      model.LogQueryOptions{Action: model.ActionPrepareRecipe},
			wantLimit: maxAuditPageSize,
			docs:      []*repository.LogEntryDocument{{Action: model.ActionPrepareRecipe, Actor: "key-1"}},
		},
		{
			name:      "requested page size",
			opts:      model.LogQueryOptions{Limit: 10, Skip: 20},
			wantLimit: 10,
			docs:      []*repository.LogEntryDocument{},
		},
		{
			name:      "page size is clamped",
			opts:      model.LogQueryOptions{Limit: 10000},
			wantLimit: maxAuditPageSize,
			docs:      []*repository.LogEntryDocument{},
		},
		{
			name:      "repository error",
			opts:      model.LogQueryOptions{},
			wantLimit: maxAuditPageSize,
			repoErr:   errors.New("query failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogsRepository)
			repo.On("Query", mock.Anything, mock.MatchedBy(func(o repository.LogQueryOptions) bool {
				return o.Limit == tt.wantLimit && o.Action == tt.opts.Action && o.Skip == tt.opts.Skip
			})).Return(tt.docs, tt.repoErr)
			svc := NewLoggingService(repo)

			entries, err := svc.QueryLogs(context.Background(), tt.opts)

			if tt.repoErr != nil {
				assert.ErrorIs(t, err, tt.repoErr)
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			require.Len(t, entries, len(tt.docs))
			for i, doc := range tt.docs {
				assert.Equal(t, doc.Action, entries[i].Action)
				assert.Equal(t, doc.Actor, entries[i].Actor)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoggingService_CountLogs(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	repo := new(MockLogsRepository)
	repo.On("Count", mock.Anything, repository.LogQueryOptions{Level: "warn", StartTime: &start}).Return(int64(7), nil)
	svc := NewLoggingService(repo)

	count, err := svc.CountLogs(context.Background(), model.LogQueryOptions{Level: "warn", StartTime: &start})

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
