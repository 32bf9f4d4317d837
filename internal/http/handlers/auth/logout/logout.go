// Package logout реализует HTTP-обработчик завершения сессии.
// Операция не имеет ошибочных состояний: повторный выход тоже успешен.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/boutiqhq/storefront-builder/internal/http/response"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
)

// Service описывает интерфейс завершения сессии.
type Service interface {
	EndSession(ctx context.Context) error
}

// Handler обрабатывает HTTP-запросы завершения сессии.
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
// @Summary Выход из аккаунта
// @Description Снимает указатель сессии хранилища.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Сессия завершена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.EndSession(r.Context()); err != nil {
		log.Error("failed to end session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to end session"))
		return
	}

	log.Info("session ended")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "logged out",
	}))
}
