// Package create реализует HTTP-обработчик добавления товара в каталог.
//
// Handler принимает JSON-запрос с данными товара, валидирует их, извлекает
// идентификатор владельца из контекста и вызывает бизнес-логику каталога.
// Цена принимается произвольным JSON-значением и приводится к числу
// на стороне сервиса.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/boutiqhq/storefront-builder/internal/http/middlewarectx"
	"github.com/boutiqhq/storefront-builder/internal/http/response"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/models"
)

// Request — входные данные создания товара.
type Request struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Price       any    `json:"price"`
	ImageURL    string `json:"image_url" validate:"omitempty"`
	Category    string `json:"category" validate:"omitempty,max=50"`
}

// Service описывает интерфейс бизнес-логики создания товара.
type Service interface {
	Add(ctx context.Context, ownerUID string, in models.ProductInput) (*models.Product, error)
}

// Handler управляет HTTP-запросами на создание товаров.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики каталога
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить товар
// @Description Создает товар текущего продавца и помещает его в начало каталога.
// @Tags Products
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового товара"
// @Success 200 {object} map[string]any "Созданный товар"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /products [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("name", req.Name))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	ownerUID, ok := r.Context().Value(middlewarectx.AccountUID).(string)
	if !ok || ownerUID == "" {
		log.Error("account uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	product, err := h.service.Add(r.Context(), ownerUID, models.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		log.Error("failed to add product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add product"))
		return
	}

	log.Info("product added", slog.String("uid", product.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"product": product,
	}))
}
