package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boutiqhq/storefront-builder/internal/models"
	accountservice "github.com/boutiqhq/storefront-builder/internal/services/account"
	"github.com/boutiqhq/storefront-builder/internal/storage/kv"
	"github.com/boutiqhq/storefront-builder/internal/storage/repository"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// Тесты собирают реальную цепочку хранилище → репозиторий → сервис
// аккаунтов: наблюдатель должен получать события от настоящих записей.
func newTestFacade(t *testing.T) (*SessionService, *accountservice.AccountService) {
	t.Helper()
	bus := EventBus.New()
	repo := repository.New(kv.NewMemory(), bus)
	accounts := accountservice.NewAccountService(repo, nil, newNoopLogger())
	return NewSessionService(accounts, bus, newNoopLogger()), accounts
}

func TestCurrentAccount_Delegates(t *testing.T) {
	ctx := context.Background()
	facade, accounts := newTestFacade(t)

	account, err := facade.CurrentAccount(ctx)
	require.NoError(t, err)
	assert.Nil(t, account, "без сессии текущего аккаунта нет")

	registered, err := accounts.Register(ctx, models.RegisterInput{
		Email:    "aicha@example.com",
		Password: "secret123",
		ShopName: "Chez Aïcha",
	})
	require.NoError(t, err)

	account, err = facade.CurrentAccount(ctx)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, registered.UID, account.UID)
}

func TestSubscribe_ObserverSeesSessionChanges(t *testing.T) {
	ctx := context.Background()
	facade, accounts := newTestFacade(t)

	var observed []*models.Account
	unsubscribe, err := facade.Subscribe(func(account *models.Account) {
		observed = append(observed, account)
	})
	require.NoError(t, err)
	defer unsubscribe()

	registered, err := accounts.Register(ctx, models.RegisterInput{
		Email:    "aicha@example.com",
		Password: "secret123",
		ShopName: "Chez Aïcha",
	})
	require.NoError(t, err)

	// Register пишет users и session — наблюдатель вызван дважды,
	// последний вызов видит новый аккаунт.
	require.NotEmpty(t, observed)
	last := observed[len(observed)-1]
	require.NotNil(t, last)
	assert.Equal(t, registered.UID, last.UID)

	observed = nil
	require.NoError(t, accounts.EndSession(ctx))
	require.Len(t, observed, 1)
	assert.Nil(t, observed[0], "после выхода наблюдатель получает nil")
}

func TestSubscribe_UnsubscribeRemovesOnlyItsObserver(t *testing.T) {
	ctx := context.Background()
	facade, accounts := newTestFacade(t)

	var callsA, callsB int
	_, err := facade.Subscribe(func(*models.Account) { callsA++ })
	require.NoError(t, err)
	unsubscribeB, err := facade.Subscribe(func(*models.Account) { callsB++ })
	require.NoError(t, err)

	unsubscribeB()

	_, err = accounts.Register(ctx, models.RegisterInput{
		Email:    "aicha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Greater(t, callsA, 0, "первый наблюдатель продолжает получать события")
	assert.Zero(t, callsB, "отписанный наблюдатель не вызывается")
}

func TestSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	ctx := context.Background()
	facade, accounts := newTestFacade(t)

	var calls int
	unsubscribe, err := facade.Subscribe(func(*models.Account) { calls++ })
	require.NoError(t, err)

	_, err = accounts.Register(ctx, models.RegisterInput{
		Email:    "aicha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Greater(t, calls, 0)

	unsubscribe()
	before := calls
	require.NoError(t, accounts.EndSession(ctx))
	assert.Equal(t, before, calls, "после отписки наблюдатель не вызывается")
}
