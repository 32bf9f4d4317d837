package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boutiqhq/storefront-builder/internal/models"
)

// ListProducts возвращает все товары в порядке хранения
// (новые в начале — Add сервиса каталога добавляет в голову списка).
func (s *Storage) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "repository.ListProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := s.kv.Get(ctx, productsKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if raw == nil {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// SaveProducts записывает таблицу товаров целиком.
func (s *Storage) SaveProducts(ctx context.Context, products []models.Product) error {
	const op = "repository.SaveProducts"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Put(ctx, productsKey, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
