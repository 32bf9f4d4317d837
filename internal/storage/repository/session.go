package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boutiqhq/storefront-builder/internal/models"
)

// GetSession возвращает указатель текущей сессии или nil, если никто
// не авторизован.
func (s *Storage) GetSession(ctx context.Context) (*models.Session, error) {
	const op = "repository.GetSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if raw == nil {
		return nil, nil
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}

// SetSession устанавливает указатель сессии на аккаунт и публикует
// событие изменения. Повторная установка того же аккаунта тоже
// публикует событие — так распространяются обновления профиля.
func (s *Storage) SetSession(ctx context.Context, accountUID string) error {
	const op = "repository.SetSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := json.Marshal(models.Session{UserUID: accountUID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Put(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notifyChanged()
	return nil
}

// ClearSession снимает указатель сессии и публикует событие изменения.
func (s *Storage) ClearSession(ctx context.Context) error {
	const op = "repository.ClearSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.notifyChanged()
	return nil
}
