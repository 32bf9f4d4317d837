// Package setactive реализует административный HTTP-обработчик
// включения и отключения аккаунта продавца.
//
// Отключенный продавец не может войти; его витрина остается доступной.
package setactive

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/boutiqhq/storefront-builder/internal/http/response"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
)

// Request — новое значение флага активности аккаунта.
type Request struct {
	Active *bool `json:"active" validate:"required"`
}

// Service описывает интерфейс переключения активности аккаунта.
type Service interface {
	SetActive(ctx context.Context, accountUID string, active bool) error
}

// Handler обрабатывает HTTP-запросы переключения активности.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
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
// @Summary Включить или отключить аккаунт
// @Description Меняет флаг активности аккаунта. Отсутствующий аккаунт — no-op.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор аккаунта"
// @Param request body Request true "Новое значение флага"
// @Success 200 {object} map[string]any "Флаг обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users/{id}/active [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.setactive"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountUID := chi.URLParam(r, "id")
	if accountUID == "" {
		log.Error("missing account id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing account id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.SetActive(r.Context(), accountUID, *req.Active); err != nil {
		log.Error("failed to set account active flag", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update account"))
		return
	}

	log.Info("account active flag updated",
		slog.String("uid", accountUID),
		slog.Bool("active", *req.Active))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":     accountUID,
		"active": *req.Active,
	}))
}
