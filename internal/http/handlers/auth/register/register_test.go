package register

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

	"github.com/boutiqhq/storefront-builder/internal/models"
	accountservice "github.com/boutiqhq/storefront-builder/internal/services/account"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, in models.RegisterInput) (*models.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockTokens реализует интерфейс register.Tokens
type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) GenerateToken(accountUID, role string) (string, error) {
	args := m.Called(accountUID, role)
	return args.String(0), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	account := &models.Account{
		UID:      "u1",
		Email:    "aicha@example.com",
		Name:     "Aïcha",
		ShopName: "Chez Aïcha",
		ShopSlug: "chez-aicha",
		Role:     "user",
		Active:   true,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockService, *MockTokens)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			requestBody: Request{
				Email:    "aicha@example.com",
				Password: "secret123",
				Name:     "Aïcha",
				ShopName: "Chez Aïcha",
			},
			setupMocks: func(s *MockService, tk *MockTokens) {
				s.On("Register", mock.Anything, mock.AnythingOfType("models.RegisterInput")).
					Return(account, nil)
				tk.On("GenerateToken", "u1", "user").Return("jwt-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"shop_slug":"chez-aicha"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMocks:     func(_ *MockService, _ *MockTokens) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации",
			requestBody: Request{
				Email:    "not-an-email",
				Password: "123",
				Name:     "A",
			},
			setupMocks:     func(_ *MockService, _ *MockTokens) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Email must be a valid email, field Password is too short, field Name is too short"}`,
		},
		{
			name: "email уже занят",
			requestBody: Request{
				Email:    "aicha@example.com",
				Password: "secret123",
				Name:     "Aïcha",
			},
			setupMocks: func(s *MockService, _ *MockTokens) {
				s.On("Register", mock.Anything, mock.AnythingOfType("models.RegisterInput")).
					Return(nil, accountservice.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"email already in use"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: Request{
				Email:    "aicha@example.com",
				Password: "secret123",
				Name:     "Aïcha",
			},
			setupMocks: func(s *MockService, _ *MockTokens) {
				s.On("Register", mock.Anything, mock.AnythingOfType("models.RegisterInput")).
					Return(nil, errors.New("kv error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to register account"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockTokens := new(MockTokens)
			tt.setupMocks(mockService, mockTokens)

			handler := New(logger, mockService, mockTokens)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
			mockTokens.AssertExpectations(t)
		})
	}
}
