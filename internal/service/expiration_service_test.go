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

func TestExpirationService_Create(t *testing.T) {
	expires := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		ctx         context.Context
		record      model.Expiration
		setupMock   func(store *storage.MockExpirationStorage)
		wantErr     bool
		wantInvalid bool
		check       func(t *testing.T, got *model.Expiration)
	}{
		{
			name:   "valid record is saved with defaults applied",
			ctx:    orgContext("org-1"),
			record: model.Expiration{Name: "office 365 license", Kind: model.ExpirationLicense, ExpiresAt: expires},
			setupMock: func(store *storage.MockExpirationStorage) {
				store.On("Save", mock.Anything, mock.AnythingOfType("*model.Expiration")).Return(nil).Once()
			},
			check: func(t *testing.T, got *model.Expiration) {
				assert.Equal(t, "org-1", got.OrgID)
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, 30, got.WarningDays)
			},
		},
		{
			name:        "missing expiry timestamp is rejected",
			ctx:         orgContext("org-1"),
			record:      model.Expiration{Name: "office 365 license", Kind: model.ExpirationLicense},
			setupMock:   func(store *storage.MockExpirationStorage) {},
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:      "missing org context is an internal error",
			ctx:       context.Background(),
			record:    model.Expiration{Name: "office 365 license", ExpiresAt: expires},
			setupMock: func(store *storage.MockExpirationStorage) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMockExpirationStorage(t)
			tt.setupMock(store)
			svc := NewExpirationService(store, slog.Default())

			got, err := svc.Create(tt.ctx, tt.record)
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantInvalid {
					assert.True(t, appErr.IsInvalid(err), "want validation error, got %v", err)
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestExpirationService_ListUpcoming(t *testing.T) {
	store := storage.NewMockExpirationStorage(t)
	store.On("FindUpcoming", mock.Anything, "org-1", mock.MatchedBy(func(before time.Time) bool {
		// the cutoff is "days" ahead of the call time
		return before.After(time.Now().AddDate(0, 0, 13)) && before.Before(time.Now().AddDate(0, 0, 15))
	})).Return([]model.Expiration{{ID: "e1", OrgID: "org-1"}}, nil).Once()

	svc := NewExpirationService(store, slog.Default())
	got, err := svc.ListUpcoming(orgContext("org-1"), 14)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestExpirationService_Delete(t *testing.T) {
	store := storage.NewMockExpirationStorage(t)
	store.On("Delete", mock.Anything, "e1", "org-1").
		Return(appErr.NewNotFound("expiration e1")).Once()

	svc := NewExpirationService(store, slog.Default())
	err := svc.Delete(orgContext("org-1"), "e1")
	assert.True(t, appErr.IsNotFound(err))
}
