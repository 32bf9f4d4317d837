// Package list реализует административный HTTP-обработчик списка аккаунтов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/boutiqhq/storefront-builder/internal/http/response"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/models"
)

// Service описывает интерфейс выборки всех аккаунтов.
type Service interface {
	List(ctx context.Context) ([]models.Account, error)
}

// Handler обрабатывает HTTP-запросы административного списка.
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
// @Summary Список всех аккаунтов
// @Description Возвращает все аккаунты со статистикой. Только для администраторов.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список аккаунтов"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accounts, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list accounts"))
		return
	}

	infos := make([]models.AccountInfo, 0, len(accounts))
	for _, account := range accounts {
		infos = append(infos, account.Info())
	}

	log.Info("accounts listed", slog.Int("count", len(infos)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"users": infos,
	}))
}
