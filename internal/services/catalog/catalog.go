// Package services содержит бизнес-логику каталога товаров:
// создание, частичное обновление, удаление и выборку по владельцу.
package services

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/boutiqhq/storefront-builder/internal/models"
)

// Repository описывает контракт таблицы товаров.
type Repository interface {
	// ListProducts возвращает все товары в порядке хранения.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// SaveProducts записывает таблицу товаров целиком.
	SaveProducts(ctx context.Context, products []models.Product) error
}

// CatalogService реализует операции каталога поверх репозитория таблиц.
type CatalogService struct {
	repo Repository
	log  *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo Repository, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo: repo,
		log:  log,
	}
}

// coercePrice приводит произвольное значение цены к неотрицательному
// числу: нечисловой ввод и отрицательные значения дают 0.
func coercePrice(value any) float64 {
	price, err := cast.ToFloat64E(value)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// normalizeCategory возвращает категорию из фиксированного набора,
// подставляя General для пустых и неизвестных значений.
func normalizeCategory(category string) string {
	if slices.Contains(models.Categories, category) {
		return category
	}
	return models.CategoryGeneral
}

// Add создает товар и помещает его в начало списка: витрина показывает
// товары от новых к старым.
func (s *CatalogService) Add(ctx context.Context, ownerUID string, in models.ProductInput) (*models.Product, error) {
	product := models.Product{
		UID:         uuid.NewString(),
		OwnerUID:    ownerUID,
		Name:        in.Name,
		Description: in.Description,
		Price:       coercePrice(in.Price),
		ImageURL:    in.ImageURL,
		Category:    normalizeCategory(in.Category),
		CreatedAt:   time.Now().UTC(),
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	products = append([]models.Product{product}, products...)
	if err := s.repo.SaveProducts(ctx, products); err != nil {
		return nil, err
	}

	s.log.Info("added product",
		slog.String("uid", product.UID), slog.String("owner", ownerUID))
	return &product, nil
}

// Update сливает patch в товар. Отсутствующий товар не является
// ошибкой: возвращается nil, вызывающая сторона проверяет результат.
func (s *CatalogService) Update(ctx context.Context, productUID string, patch models.ProductPatch) (*models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range products {
		if products[i].UID == productUID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	next := products[idx]
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Price != nil {
		next.Price = coercePrice(*patch.Price)
	}
	if patch.ImageURL != nil {
		next.ImageURL = *patch.ImageURL
	}
	if patch.Category != nil {
		next.Category = normalizeCategory(*patch.Category)
	}

	products[idx] = next
	if err := s.repo.SaveProducts(ctx, products); err != nil {
		return nil, err
	}
	return &next, nil
}

// Remove удаляет товар; отсутствие товара — no-op.
func (s *CatalogService) Remove(ctx context.Context, productUID string) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	next := make([]models.Product, 0, len(products))
	for i := range products {
		if products[i].UID != productUID {
			next = append(next, products[i])
		}
	}
	return s.repo.SaveProducts(ctx, next)
}

// ListByOwner возвращает товары владельца в порядке хранения
// (новые первыми).
func (s *CatalogService) ListByOwner(ctx context.Context, ownerUID string) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Product, 0)
	for i := range products {
		if products[i].OwnerUID == ownerUID {
			result = append(result, products[i])
		}
	}
	return result, nil
}
