// Package register реализует HTTP-обработчик регистрации продавца.
//
// Handler принимает JSON-запрос с данными аккаунта и магазина, валидирует его,
// вызывает бизнес-логику регистрации и возвращает публичное представление
// аккаунта вместе с JWT. Успешная регистрация также устанавливает указатель
// сессии хранилища на новый аккаунт.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/boutiqhq/storefront-builder/internal/http/response"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/models"
	accountservice "github.com/boutiqhq/storefront-builder/internal/services/account"
)

// Request — входные данные для регистрации.
type Request struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	Name            string `json:"name" validate:"required,min=2,max=50"`
	ShopName        string `json:"shop_name" validate:"omitempty,max=100"`
	ShopDescription string `json:"shop_description" validate:"omitempty,max=500"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=20"`
	WhatsappNumber  string `json:"whatsapp_number" validate:"omitempty,max=20"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.Account, error)
}

// Tokens выпускает JWT для нового аккаунта.
type Tokens interface {
	GenerateToken(accountUID, role string) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики аккаунтов
	tokens   Tokens              // Генератор JWT
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером, сервисом и генератором токенов.
func New(log *slog.Logger, service Service, tokens Tokens) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать продавца
// @Description Создает аккаунт продавца с уникальным slug витрины. Возвращает аккаунт и JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового аккаунта"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
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
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	account, err := h.service.Register(r.Context(), models.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		ShopName:        req.ShopName,
		ShopDescription: req.ShopDescription,
		PhoneNumber:     req.PhoneNumber,
		WhatsappNumber:  req.WhatsappNumber,
	})
	if err != nil {
		if errors.Is(err, accountservice.ErrEmailTaken) {
			log.Error("email already in use", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already in use"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register account"))
		return
	}

	token, err := h.tokens.GenerateToken(account.UID, account.Role)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register account"))
		return
	}

	log.Info("account registered", slog.String("uid", account.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"account": account.Info(),
		"token":   token,
	}))
}
