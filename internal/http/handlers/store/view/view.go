// Package view реализует публичный HTTP-обработчик витрины магазина.
//
// Витрина доступна без авторизации по slug. Каждый успешный показ
// увеличивает счетчик просмотров владельца.
package view

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/boutiqhq/storefront-builder/internal/http/response"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/models"
)

// Service описывает интерфейс сборки витрины.
type Service interface {
	View(ctx context.Context, slug string) (*models.StorefrontView, error)
}

// Handler обрабатывает HTTP-запросы витрины.
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
// @Summary Витрина магазина
// @Description Возвращает публичные данные магазина и его товары по slug.
// @Tags Storefront
// @Produce  json
// @Param slug path string true "Slug магазина"
// @Success 200 {object} map[string]any "Витрина"
// @Failure 400 {object} response.ErrorResponse "Нет slug"
// @Failure 404 {object} response.ErrorResponse "Магазин не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stores/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.store.view"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		log.Error("missing store slug in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing store slug"))
		return
	}

	storefront, err := h.service.View(r.Context(), slug)
	if err != nil {
		log.Error("failed to build storefront", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load store"))
		return
	}
	if storefront == nil {
		log.Error("store not found", slog.String("slug", slug))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("store not found"))
		return
	}

	log.Info("storefront served",
		slog.String("slug", slug),
		slog.Int("products", len(storefront.Products)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"store": storefront,
	}))
}
