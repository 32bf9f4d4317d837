package create

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

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, ownerUID string, in models.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, ownerUID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	product := &models.Product{
		UID:      "p1",
		OwnerUID: "u1",
		Name:     "Article",
		Price:    2500,
		Category: models.CategoryGeneral,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		ownerUID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание товара",
			requestBody: Request{
				Name:  "Article",
				Price: "2500",
			},
			ownerUID: "u1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "u1", mock.AnythingOfType("models.ProductInput")).
					Return(product, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"owner_id":"u1"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			ownerUID:       "u1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "ошибка валидации",
			requestBody:    Request{Name: ""},
			ownerUID:       "u1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Name is a required field"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    Request{Name: "Article"},
			ownerUID:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: Request{Name: "Article"},
			ownerUID:    "u1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "u1", mock.AnythingOfType("models.ProductInput")).
					Return(nil, errors.New("kv error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not add product"}`,
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

			req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.ownerUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.AccountUID, tt.ownerUID)
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
