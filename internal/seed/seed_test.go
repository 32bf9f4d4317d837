package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boutiqhq/storefront-builder/internal/models"
	"github.com/boutiqhq/storefront-builder/internal/storage/kv"
	"github.com/boutiqhq/storefront-builder/internal/storage/repository"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRun_SeedsEmptyStorage(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(kv.NewMemory(), nil)

	require.NoError(t, Run(ctx, repo, newNoopLogger()))

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)

	slugs := make(map[string]bool)
	for _, u := range users {
		assert.True(t, u.Active)
		assert.Equal(t, "free", u.Plan)
		assert.NotEmpty(t, u.PasswordHash)
		assert.NotEmpty(t, u.ShopSlug)
		assert.False(t, slugs[u.ShopSlug], "slug должен быть уникальным")
		slugs[u.ShopSlug] = true
	}
	assert.True(t, slugs["chez-aicha"])

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 16, "по четыре товара на магазин")

	session, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session, "seed не трогает указатель сессии")
}

func TestRun_SkipsNonEmptyStorage(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(kv.NewMemory(), nil)

	require.NoError(t, repo.SaveUsers(ctx, []models.Account{{UID: "u1"}}))
	require.NoError(t, Run(ctx, repo, newNoopLogger()))

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1, "непустая таблица не перезаписывается")
}
