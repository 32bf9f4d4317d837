// Package services содержит бизнес-логику работы с аккаунтами продавцов:
// регистрация, аутентификация, сессия, обновление профиля и
// административные операции.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/boutiqhq/storefront-builder/internal/lib/password"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/lib/slug"
	"github.com/boutiqhq/storefront-builder/internal/models"
)

// Ошибки уровня хранилища аккаунтов. NotFound ошибкой не является:
// методы поиска возвращают nil.
var (
	// ErrEmailTaken — email уже занят другим аккаунтом.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials — пара email/пароль не подошла.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled — аккаунт деактивирован администратором.
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrNotAuthenticated — операция требует активной сессии.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Repository описывает контракт таблиц аккаунтов и сессии.
type Repository interface {
	// ListUsers возвращает все аккаунты.
	ListUsers(ctx context.Context) ([]models.Account, error)
	// SaveUsers записывает таблицу аккаунтов целиком.
	SaveUsers(ctx context.Context, users []models.Account) error
	// GetSession возвращает указатель сессии или nil.
	GetSession(ctx context.Context) (*models.Session, error)
	// SetSession устанавливает указатель сессии.
	SetSession(ctx context.Context, accountUID string) error
	// ClearSession снимает указатель сессии.
	ClearSession(ctx context.Context) error
}

// Events публикует доменные события; реализация может быть отключена.
type Events interface {
	Publish(routingKey string, payload any) error
}

// AccountService реализует операции над аккаунтами поверх репозитория таблиц.
type AccountService struct {
	repo   Repository
	events Events
	log    *slog.Logger
}

// NewAccountService создает новый экземпляр AccountService.
// events может быть nil.
func NewAccountService(repo Repository, events Events, log *slog.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// uniqueSlug подбирает свободный slug: base, base-1, base-2, …
// Проверка идет по всем аккаунтам, включая владельца прежнего slug.
func uniqueSlug(users []models.Account, base string) string {
	taken := func(candidate string) bool {
		for i := range users {
			if users[i].ShopSlug == candidate {
				return true
			}
		}
		return false
	}
	candidate := base
	for i := 1; taken(candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}

// slugBase нормализует название магазина, подставляя случайное
// запасное значение, если нормализация дала пустую строку.
func slugBase(label string) string {
	if base := slug.Make(label); base != "" {
		return base
	}
	return fmt.Sprintf("boutique-%d", rand.Intn(1000))
}

// Register создает аккаунт продавца. Email сверяется точным сравнением;
// slug строится из названия магазина, затем из имени. Успешная
// регистрация устанавливает указатель сессии на новый аккаунт.
func (s *AccountService) Register(ctx context.Context, in models.RegisterInput) (*models.Account, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == in.Email {
			return nil, ErrEmailTaken
		}
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return nil, err
	}

	shopName := in.ShopName
	if shopName == "" {
		shopName = in.Name
	}
	if shopName == "" {
		shopName = "My Shop"
	}

	seed := in.ShopName
	if seed == "" {
		seed = in.Name
	}
	account := models.Account{
		UID:             uuid.NewString(),
		Email:           in.Email,
		PasswordHash:    hashed,
		Name:            in.Name,
		ShopName:        shopName,
		ShopDescription: in.ShopDescription,
		PhoneNumber:     in.PhoneNumber,
		WhatsappNumber:  in.WhatsappNumber,
		ShopSlug:        uniqueSlug(users, slugBase(seed)),
		Plan:            "free",
		Role:            "user", // дефолтная роль при регистрации
		Active:          true,
		CreatedAt:       time.Now().UTC(),
	}

	users = append(users, account)
	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return nil, err
	}
	if err := s.repo.SetSession(ctx, account.UID); err != nil {
		return nil, err
	}

	s.log.Info("registered new account",
		slog.String("uid", account.UID), slog.String("slug", account.ShopSlug))

	if s.events != nil {
		if err := s.events.Publish("account.registered", account.Info()); err != nil {
			s.log.Warn("failed to publish account.registered", sl.Err(err))
		}
	}
	return &account, nil
}

// Authenticate проверяет email и пароль. Совпавший, но деактивированный
// аккаунт дает ErrAccountDisabled. Успех устанавливает указатель сессии.
func (s *AccountService) Authenticate(ctx context.Context, email, rawPassword string) (*models.Account, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email != email {
			continue
		}
		if err := password.CompareHash(users[i].PasswordHash, rawPassword); err != nil {
			return nil, ErrInvalidCredentials
		}
		if !users[i].Active {
			return nil, ErrAccountDisabled
		}
		if err := s.repo.SetSession(ctx, users[i].UID); err != nil {
			return nil, err
		}
		return &users[i], nil
	}
	return nil, ErrInvalidCredentials
}

// EndSession снимает указатель сессии. Ошибочных состояний нет:
// повторный выход тоже успешен.
func (s *AccountService) EndSession(ctx context.Context) error {
	return s.repo.ClearSession(ctx)
}

// CurrentAccount возвращает аккаунт, на который указывает сессия,
// или nil, если сессии нет либо аккаунт уже не существует.
func (s *AccountService) CurrentAccount(ctx context.Context) (*models.Account, error) {
	session, err := s.repo.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UID == session.UserUID {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetByUID возвращает аккаунт по идентификатору или nil.
func (s *AccountService) GetByUID(ctx context.Context, uid string) (*models.Account, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UID == uid {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindBySlug возвращает аккаунт по slug витрины или nil.
func (s *AccountService) FindBySlug(ctx context.Context, shopSlug string) (*models.Account, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ShopSlug == shopSlug {
			return &users[i], nil
		}
	}
	return nil, nil
}

// UpdateProfile сливает patch в аккаунт текущей сессии. Без активной
// сессии возвращает ErrNotAuthenticated.
func (s *AccountService) UpdateProfile(ctx context.Context, patch models.AccountPatch) (*models.Account, error) {
	current, err := s.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotAuthenticated
	}
	account, err := s.UpdateProfileFor(ctx, current.UID, patch)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotAuthenticated
	}
	return account, nil
}

// UpdateProfileFor сливает patch в аккаунт с указанным идентификатором —
// точка входа HTTP-слоя, где вызывающий определяется JWT-токеном, а не
// указателем сессии. Смена названия магазина перегенерирует slug
// с повторной проверкой уникальности. Неизвестный идентификатор даёт
// nil без ошибки. Указатель сессии переустанавливается только когда он
// уже указывает на этот аккаунт, чтобы наблюдатели получили обновление;
// чужая сессия не затрагивается.
func (s *AccountService) UpdateProfileFor(ctx context.Context, uid string, patch models.AccountPatch) (*models.Account, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range users {
		if users[i].UID == uid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	next := users[idx]
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.ShopDescription != nil {
		next.ShopDescription = *patch.ShopDescription
	}
	if patch.PhoneNumber != nil {
		next.PhoneNumber = *patch.PhoneNumber
	}
	if patch.WhatsappNumber != nil {
		next.WhatsappNumber = *patch.WhatsappNumber
	}
	if patch.Plan != nil {
		next.Plan = *patch.Plan
	}
	if patch.ShopName != nil && *patch.ShopName != users[idx].ShopName {
		next.ShopName = *patch.ShopName
		next.ShopSlug = uniqueSlug(users, slugBase(*patch.ShopName))
	}

	users[idx] = next
	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return nil, err
	}
	session, err := s.repo.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session != nil && session.UserUID == next.UID {
		if err := s.repo.SetSession(ctx, next.UID); err != nil {
			return nil, err
		}
	}
	s.log.Info("updated account profile", slog.String("uid", next.UID))
	return &next, nil
}

// List возвращает все аккаунты без фильтрации (административная операция).
func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	return s.repo.ListUsers(ctx)
}

// SetActive переключает флаг активности аккаунта. Неизвестный
// идентификатор молча игнорируется.
func (s *AccountService) SetActive(ctx context.Context, uid string, active bool) error {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].UID == uid {
			users[i].Active = active
			return s.repo.SaveUsers(ctx, users)
		}
	}
	return nil
}

// RecordStoreView увеличивает счётчик просмотров витрины и запоминает
// дату визита. Неизвестный идентификатор молча игнорируется.
func (s *AccountService) RecordStoreView(ctx context.Context, uid string) error {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].UID == uid {
			now := time.Now().UTC()
			users[i].Stats.ViewsCount++
			users[i].Stats.LastVisitDate = &now
			return s.repo.SaveUsers(ctx, users)
		}
	}
	return nil
}
