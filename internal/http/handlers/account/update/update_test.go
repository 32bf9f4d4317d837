package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/boutiqhq/storefront-builder/internal/http/middlewarectx"
	"github.com/boutiqhq/storefront-builder/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateProfileFor(ctx context.Context, uid string, patch models.AccountPatch) (*models.Account, error) {
	args := m.Called(ctx, uid, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	name := "Aïcha Diallo"
	account := &models.Account{
		UID:   "u1",
		Email: "aicha@example.com",
		Name:  name,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		accountUID     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "patch применяется к аккаунту владельца токена",
			requestBody: Request{Name: &name},
			accountUID:  "u1",
			setupMock: func(m *MockService) {
				m.On("UpdateProfileFor", mock.Anything, "u1", models.AccountPatch{Name: &name}).
					Return(account, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"u1"`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    Request{Name: &name},
			accountUID:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "аккаунт владельца токена не найден",
			requestBody: Request{Name: &name},
			accountUID:  "ghost",
			setupMock: func(m *MockService) {
				m.On("UpdateProfileFor", mock.Anything, "ghost", mock.AnythingOfType("models.AccountPatch")).
					Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"account not found"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			accountUID:     "u1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: Request{Name: &name},
			accountUID:  "u1",
			setupMock: func(m *MockService) {
				m.On("UpdateProfileFor", mock.Anything, "u1", mock.AnythingOfType("models.AccountPatch")).
					Return(nil, errors.New("kv error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to update profile"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPatch, "/me", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.accountUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.AccountUID, tt.accountUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
