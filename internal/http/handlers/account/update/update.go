// Package update реализует HTTP-обработчик частичного обновления профиля.
//
// Patch сливается в аккаунт владельца токена; смена названия магазина
// перегенерирует slug витрины с повторной проверкой уникальности.
package update

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

// Request — частичное обновление профиля, nil-поле не меняется.
type Request struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	ShopName        *string `json:"shop_name,omitempty" validate:"omitempty,max=100"`
	ShopDescription *string `json:"shop_description,omitempty" validate:"omitempty,max=500"`
	PhoneNumber     *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	WhatsappNumber  *string `json:"whatsapp_number,omitempty" validate:"omitempty,max=20"`
	Plan            *string `json:"plan,omitempty" validate:"omitempty,oneof=free pro"`
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateProfileFor(ctx context.Context, uid string, patch models.AccountPatch) (*models.Account, error)
}

// Handler обрабатывает HTTP-запросы обновления профиля.
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
// @Summary Обновить профиль
// @Description Сливает patch в аккаунт владельца токена. Смена названия магазина меняет slug.
// @Tags Account
// @Accept  json
// @Produce  json
// @Param request body Request true "Частичное обновление профиля"
// @Success 200 {object} map[string]any "Обновленный аккаунт"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 404 {object} response.ErrorResponse "Аккаунт не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /me [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.AccountUID).(string)
	if !ok || uid == "" {
		log.Error("missing account uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	account, err := h.service.UpdateProfileFor(r.Context(), uid, models.AccountPatch{
		Name:            req.Name,
		ShopName:        req.ShopName,
		ShopDescription: req.ShopDescription,
		PhoneNumber:     req.PhoneNumber,
		WhatsappNumber:  req.WhatsappNumber,
		Plan:            req.Plan,
	})
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update profile"))
		return
	}
	if account == nil {
		log.Error("account not found", slog.String("uid", uid))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("account not found"))
		return
	}

	log.Info("profile updated", slog.String("uid", account.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"account": account.Info(),
	}))
}
