// Package me реализует HTTP-обработчик выдачи аккаунта владельца токена.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/boutiqhq/storefront-builder/internal/http/middlewarectx"
	"github.com/boutiqhq/storefront-builder/internal/http/response"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/models"
)

// Service описывает интерфейс выборки аккаунта по идентификатору.
type Service interface {
	GetByUID(ctx context.Context, uid string) (*models.Account, error)
}

// Handler обрабатывает HTTP-запросы текущего аккаунта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущий аккаунт
// @Description Возвращает аккаунт владельца JWT.
// @Tags Account
// @Produce  json
// @Success 200 {object} map[string]any "Аккаунт"
// @Failure 401 {object} response.ErrorResponse "Нет авторизации"
// @Failure 404 {object} response.ErrorResponse "Аккаунт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.AccountUID).(string)
	if !ok || uid == "" {
		log.Error("account uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	account, err := h.service.GetByUID(r.Context(), uid)
	if err != nil {
		log.Error("failed to get account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get account"))
		return
	}
	if account == nil {
		log.Error("account not found", slog.String("uid", uid))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("account not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"account": account.Info(),
	}))
}
