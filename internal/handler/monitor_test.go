package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appErr "github.com/huduglue/watchtower/internal/errors"
	"github.com/huduglue/watchtower/internal/service"
)

func TestMonitorHandler_Create_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{
			name:       "validation failure answers 400",
			body:       `{"name":"","url":"ftp://files.example.com/"}`,
			svcErr:     appErr.NewInvalid("monitor requires an http or https URL"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage failure answers 500",
			body:       `{"name":"corp site","url":"https://example.com/"}`,
			svcErr:     appErr.NewInternal("failed to create monitor: connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "malformed body answers 400",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewMockMonitorService(t)
			if tt.svcErr != nil {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.svcErr).Once()
			}
			h := NewMonitorHandler(svc, nil, slog.Default())

			req := httptest.NewRequest(http.MethodPost, "/monitors", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
