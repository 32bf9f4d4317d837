// Package services содержит фасад сессии: доступ к текущему аккаунту
// и подписку наблюдателей на изменения авторизации.
//
// Наблюдатели получают актуальный результат CurrentAccount при каждом
// изменении таблиц users или session — явная замена браузерного события
// storage исходного приложения. В рамках одного процесса доставка
// синхронная через EventBus.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/asaskevich/EventBus"

	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/models"
	"github.com/boutiqhq/storefront-builder/internal/storage/repository"
)

// AccountProvider выдает аккаунт текущей сессии.
type AccountProvider interface {
	CurrentAccount(ctx context.Context) (*models.Account, error)
}

// SessionService — фасад сессии поверх сервиса аккаунтов и шины событий.
//
// На шину регистрируется единственный диспетчер; наблюдатели живут во
// внутреннем реестре под мьютексом. EventBus различает обработчики по
// адресу кода функции, поэтому вешать на топик по closure на наблюдателя
// нельзя: отписка одного сняла бы чужой обработчик.
type SessionService struct {
	accounts AccountProvider
	bus      EventBus.Bus
	log      *slog.Logger

	mu        sync.Mutex
	observers map[int]func(*models.Account)
	nextID    int
	attached  bool
}

// NewSessionService создает новый экземпляр SessionService.
func NewSessionService(accounts AccountProvider, bus EventBus.Bus, log *slog.Logger) *SessionService {
	return &SessionService{
		accounts:  accounts,
		bus:       bus,
		log:       log,
		observers: make(map[int]func(*models.Account)),
	}
}

// CurrentAccount возвращает аккаунт текущей сессии или nil.
func (s *SessionService) CurrentAccount(ctx context.Context) (*models.Account, error) {
	return s.accounts.CurrentAccount(ctx)
}

// dispatch разрешает текущий аккаунт и вызывает всех наблюдателей.
// Снимок реестра берется под мьютексом, вызовы идут вне его.
func (s *SessionService) dispatch() {
	account, err := s.accounts.CurrentAccount(context.Background())
	if err != nil {
		s.log.Warn("failed to resolve current account for observers", sl.Err(err))
		return
	}

	s.mu.Lock()
	snapshot := make([]func(*models.Account), 0, len(s.observers))
	for _, fn := range s.observers {
		snapshot = append(snapshot, fn)
	}
	s.mu.Unlock()

	for _, fn := range snapshot {
		fn(account)
	}
}

// Subscribe регистрирует наблюдателя и возвращает функцию отписки.
// После вызова отписки наблюдатель больше не вызывается; отписка
// одного наблюдателя не затрагивает остальных. Повторная отписка
// безопасна.
func (s *SessionService) Subscribe(fn func(*models.Account)) (func(), error) {
	const op = "session.Subscribe"

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		if err := s.bus.Subscribe(repository.TopicStoreChanged, s.dispatch); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.attached = true
	}

	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
	return unsubscribe, nil
}
