package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boutiqhq/storefront-builder/internal/models"
)

// ListUsers возвращает все аккаунты в порядке хранения.
// Отсутствующая таблица равнозначна пустой.
func (s *Storage) ListUsers(ctx context.Context) ([]models.Account, error) {
	const op = "repository.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := s.kv.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if raw == nil {
		return []models.Account{}, nil
	}
	var users []models.Account
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// SaveUsers записывает таблицу аккаунтов целиком и публикует событие изменения.
func (s *Storage) SaveUsers(ctx context.Context, users []models.Account) error {
	const op = "repository.SaveUsers"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Put(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notifyChanged()
	return nil
}

// FindUserByEmail возвращает аккаунт с точно совпадающим email или nil.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "repository.FindUserByEmail"
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindUserByUID возвращает аккаунт по идентификатору или nil.
func (s *Storage) FindUserByUID(ctx context.Context, uid string) (*models.Account, error) {
	const op = "repository.FindUserByUID"
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range users {
		if users[i].UID == uid {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindUserBySlug возвращает аккаунт по slug витрины или nil.
func (s *Storage) FindUserBySlug(ctx context.Context, shopSlug string) (*models.Account, error) {
	const op = "repository.FindUserBySlug"
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range users {
		if users[i].ShopSlug == shopSlug {
			return &users[i], nil
		}
	}
	return nil, nil
}
