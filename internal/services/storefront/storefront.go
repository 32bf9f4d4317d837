// Package services содержит бизнес-логику публичной витрины:
// выдача магазина по slug с кешированием, учёт просмотров и сборка
// ссылки для связи с продавцом через мессенджер.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/boutiqhq/storefront-builder/internal/lib/phone"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/models"
)

// TTL кеша витрины: короткий, потому что кеш не инвалидируется
// при обновлении профиля продавца.
const storeCacheTTL = 5 * time.Minute

// Accounts описывает нужную витрине часть сервиса аккаунтов.
type Accounts interface {
	FindBySlug(ctx context.Context, shopSlug string) (*models.Account, error)
	RecordStoreView(ctx context.Context, uid string) error
}

// Catalog описывает нужную витрине часть сервиса каталога.
type Catalog interface {
	ListByOwner(ctx context.Context, ownerUID string) ([]models.Product, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Events публикует доменные события; реализация может быть отключена.
type Events interface {
	Publish(routingKey string, payload any) error
}

// StorefrontService собирает публичное представление витрины.
type StorefrontService struct {
	accounts Accounts
	catalog  Catalog
	cache    Cache
	events   Events
	log      *slog.Logger
}

// NewStorefrontService создает новый экземпляр StorefrontService.
// events может быть nil.
func NewStorefrontService(accounts Accounts, catalog Catalog, cache Cache, events Events, log *slog.Logger) *StorefrontService {
	return &StorefrontService{
		accounts: accounts,
		catalog:  catalog,
		cache:    cache,
		events:   events,
		log:      log,
	}
}

// View возвращает витрину по slug или nil, если магазина нет.
// Каждый успешный просмотр учитывается в статистике владельца,
// даже когда аккаунт взят из кеша.
func (s *StorefrontService) View(ctx context.Context, shopSlug string) (*models.StorefrontView, error) {
	cacheKey := fmt.Sprintf("storefront:slug:%s", shopSlug)

	var owner *models.Account
	found, err := s.cache.Get(cacheKey, &owner)
	if err != nil {
		s.log.Warn("failed to read storefront cache", slog.String("key", cacheKey), sl.Err(err))
		found = false
	}
	if !found {
		owner, err = s.accounts.FindBySlug(ctx, shopSlug)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, nil
		}
		if err := s.cache.Set(cacheKey, owner, storeCacheTTL); err != nil {
			s.log.Warn("failed to cache storefront", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	if owner == nil {
		return nil, nil
	}

	if err := s.accounts.RecordStoreView(ctx, owner.UID); err != nil {
		s.log.Warn("failed to record store view", slog.String("uid", owner.UID), sl.Err(err))
	}

	products, err := s.catalog.ListByOwner(ctx, owner.UID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.Publish("store.viewed", map[string]any{
			"owner_uid": owner.UID,
			"shop_slug": shopSlug,
		}); err != nil {
			s.log.Warn("failed to publish store.viewed", sl.Err(err))
		}
	}

	return &models.StorefrontView{
		Owner:       owner.Info(),
		Products:    products,
		ContactLink: phone.WhatsAppLink(owner.WhatsappNumber, ""),
	}, nil
}
