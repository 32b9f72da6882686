package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErr "github.com/huduglue/watchtower/internal/errors"
	"github.com/huduglue/watchtower/internal/model"
	"github.com/huduglue/watchtower/internal/storage"
)

func orgContext(orgID string) context.Context {
	return context.WithValue(context.Background(), model.ContextOrgIDKey, orgID)
}

func TestMonitorService_Create(t *testing.T) {
	tests := []struct {
		name        string
		ctx         context.Context
		monitor     model.Monitor
		setupMock   func(store *storage.MockMonitorStorage)
		wantErr     bool
		wantInvalid bool
		check       func(t *testing.T, got *model.Monitor)
	}{
		{
			name:    "valid monitor is saved with defaults applied",
			ctx:     orgContext("org-1"),
			monitor: model.Monitor{Name: "corp site", URL: "https://example.com/"},
			setupMock: func(store *storage.MockMonitorStorage) {
				store.On("Save", mock.Anything, mock.AnythingOfType("*model.Monitor")).Return(nil).Once()
			},
			check: func(t *testing.T, got *model.Monitor) {
				assert.Equal(t, "org-1", got.OrgID)
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, model.StatusUnknown, got.Status)
				assert.Equal(t, 5, got.CheckIntervalMinutes)
				assert.Equal(t, 30, got.SSLWarningDays)
				assert.Equal(t, 30, got.DomainWarningDays)
			},
		},
		{
			name:        "missing name is rejected",
			ctx:         orgContext("org-1"),
			monitor:     model.Monitor{URL: "https://example.com/"},
			setupMock:   func(store *storage.MockMonitorStorage) {},
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:        "non-http scheme is rejected",
			ctx:         orgContext("org-1"),
			monitor:     model.Monitor{Name: "fileserver", URL: "ftp://files.example.com/"},
			setupMock:   func(store *storage.MockMonitorStorage) {},
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:      "missing org context is an internal error",
			ctx:       context.Background(),
			monitor:   model.Monitor{Name: "corp site", URL: "https://example.com/"},
			setupMock: func(store *storage.MockMonitorStorage) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMockMonitorStorage(t)
			tt.setupMock(store)
			svc := NewMonitorService(store, slog.Default())

			got, err := svc.Create(tt.ctx, tt.monitor)
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantInvalid {
					assert.True(t, appErr.IsInvalid(err), "want validation error, got %v", err)
					assert.False(t, appErr.IsInternal(err), "validation error must not read as internal")
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestMonitorService_GetByID(t *testing.T) {
	owned := model.Monitor{ID: "m1", OrgID: "org-1", Name: "corp site", URL: "https://example.com/"}
	foreign := model.Monitor{ID: "m2", OrgID: "org-2", Name: "other site", URL: "https://other.example.com/"}

	tests := []struct {
		name      string
		id        string
		setupMock func(store *storage.MockMonitorStorage)
		wantErr   bool
		notFound  bool
	}{
		{
			name: "own monitor is returned",
			id:   "m1",
			setupMock: func(store *storage.MockMonitorStorage) {
				store.On("FindByID", mock.Anything, "m1").Return(owned, nil).Once()
			},
		},
		{
			name: "another org's monitor reads as missing",
			id:   "m2",
			setupMock: func(store *storage.MockMonitorStorage) {
				store.On("FindByID", mock.Anything, "m2").Return(foreign, nil).Once()
			},
			wantErr:  true,
			notFound: true,
		},
		{
			name: "unknown id reads as missing",
			id:   "nope",
			setupMock: func(store *storage.MockMonitorStorage) {
				store.On("FindByID", mock.Anything, "nope").
					Return(model.Monitor{}, appErr.NewNotFound("monitor nope")).Once()
			},
			wantErr:  true,
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMockMonitorStorage(t)
			tt.setupMock(store)
			svc := NewMonitorService(store, slog.Default())

			got, err := svc.GetByID(orgContext("org-1"), tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.notFound {
					assert.True(t, appErr.IsNotFound(err), "want not-found error, got %v", err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID)
			assert.Equal(t, "org-1", got.OrgID)
		})
	}
}

func TestMonitorService_List(t *testing.T) {
	store := storage.NewMockMonitorStorage(t)
	store.On("FindAllByOrgID", mock.Anything, "org-1").Return([]model.Monitor{
		{ID: "m1", OrgID: "org-1"},
		{ID: "m2", OrgID: "org-1"},
	}, nil).Once()

	svc := NewMonitorService(store, slog.Default())
	got, err := svc.List(orgContext("org-1"))

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMonitorService_Delete(t *testing.T) {
	t.Run("delete is scoped to the caller's org", func(t *testing.T) {
		store := storage.NewMockMonitorStorage(t)
		store.On("Delete", mock.Anything, "m1", "org-1").Return(nil).Once()

		svc := NewMonitorService(store, slog.Default())
		err := svc.Delete(orgContext("org-1"), "m1")
		require.NoError(t, err)
	})

	t.Run("missing monitor surfaces as not found", func(t *testing.T) {
		store := storage.NewMockMonitorStorage(t)
		store.On("Delete", mock.Anything, "m1", "org-1").
			Return(appErr.NewNotFound("monitor m1")).Once()

		svc := NewMonitorService(store, slog.Default())
		err := svc.Delete(orgContext("org-1"), "m1")
		assert.True(t, appErr.IsNotFound(err))
	})
}

func TestMonitorService_RecordCheck(t *testing.T) {
	checked := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := &model.Monitor{
		ID:             "m1",
		OrgID:          "org-1",
		Status:         model.StatusActive,
		LastCheckedAt:  &checked,
		LastStatusCode: 200,
	}

	t.Run("observed state is written without org context", func(t *testing.T) {
		store := storage.NewMockMonitorStorage(t)
		store.On("UpdateCheckResult", mock.Anything, m).Return(nil).Once()

		svc := NewMonitorService(store, slog.Default())
		require.NoError(t, svc.RecordCheck(context.Background(), m))
	})

	t.Run("vanished monitor surfaces as not found", func(t *testing.T) {
		store := storage.NewMockMonitorStorage(t)
		store.On("UpdateCheckResult", mock.Anything, m).
			Return(appErr.NewNotFound("monitor m1")).Once()

		svc := NewMonitorService(store, slog.Default())
		err := svc.RecordCheck(context.Background(), m)
		assert.True(t, appErr.IsNotFound(err))
	})
}

func TestMonitorService_ListDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := storage.NewMockMonitorStorage(t)
	store.On("FindDue", mock.Anything, now).Return([]model.Monitor{
		{ID: "m1", OrgID: "org-1"},
		{ID: "m2", OrgID: "org-2"},
	}, nil).Once()

	svc := NewMonitorService(store, slog.Default())
	got, err := svc.ListDue(context.Background(), now)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
