package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boutiqhq/storefront-builder/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}
func (m *RepoMock) SaveProducts(ctx context.Context, products []models.Product) error {
	return m.Called(ctx, products).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAdd_PriceCoercion(t *testing.T) {
	tests := []struct {
		name  string
		price any
		want  float64
	}{
		{
			name:  "число остается числом",
			price: 2500,
			want:  2500,
		},
		{
			name:  "числовая строка приводится к числу",
			price: "25",
			want:  25,
		},
		{
			name:  "нечисловая строка дает ноль",
			price: "abc",
			want:  0,
		},
		{
			name:  "отрицательная цена дает ноль",
			price: -100,
			want:  0,
		},
		{
			name:  "nil дает ноль",
			price: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ListProducts", mock.Anything).Return([]models.Product{}, nil).Once()
			repo.On("SaveProducts", mock.Anything, mock.Anything).Return(nil).Once()

			service := NewCatalogService(repo, newNoopLogger())
			product, err := service.Add(context.Background(), "u1", models.ProductInput{
				Name:  "Article",
				Price: tt.price,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, product.Price)
		})
	}
}

func TestAdd_PrependsToCatalog(t *testing.T) {
	existing := []models.Product{{UID: "p1", OwnerUID: "u1", Name: "old"}}

	repo := new(RepoMock)
	repo.On("ListProducts", mock.Anything).Return(existing, nil).Once()
	var saved []models.Product
	repo.On("SaveProducts", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]models.Product) }).
		Return(nil).Once()

	service := NewCatalogService(repo, newNoopLogger())
	product, err := service.Add(context.Background(), "u1", models.ProductInput{Name: "new"})
	require.NoError(t, err)

	require.Len(t, saved, 2)
	assert.Equal(t, product.UID, saved[0].UID, "новый товар встает в начало списка")
	assert.Equal(t, "p1", saved[1].UID)
	assert.Equal(t, "u1", product.OwnerUID)
	assert.NotEmpty(t, product.UID)
}

func TestAdd_CategoryNormalization(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{
			name:     "известная категория сохраняется",
			category: models.CategoryServices,
			want:     models.CategoryServices,
		},
		{
			name:     "пустая категория дает General",
			category: "",
			want:     models.CategoryGeneral,
		},
		{
			name:     "неизвестная категория дает General",
			category: "Electronics",
			want:     models.CategoryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ListProducts", mock.Anything).Return([]models.Product{}, nil).Once()
			repo.On("SaveProducts", mock.Anything, mock.Anything).Return(nil).Once()

			service := NewCatalogService(repo, newNoopLogger())
			product, err := service.Add(context.Background(), "u1", models.ProductInput{
				Name:     "Article",
				Category: tt.category,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, product.Category)
		})
	}
}

func TestUpdate(t *testing.T) {
	existing := []models.Product{
		{UID: "p1", OwnerUID: "u1", Name: "old", Price: 100},
	}

	t.Run("patch сливается в товар", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListProducts", mock.Anything).Return(existing, nil).Once()
		repo.On("SaveProducts", mock.Anything, mock.Anything).Return(nil).Once()

		newName := "renamed"
		badPrice := -50.0
		service := NewCatalogService(repo, newNoopLogger())
		product, err := service.Update(context.Background(), "p1", models.ProductPatch{
			Name:  &newName,
			Price: &badPrice,
		})
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "renamed", product.Name)
		assert.Equal(t, float64(0), product.Price, "отрицательная цена приводится к нулю")
		assert.Equal(t, "u1", product.OwnerUID, "незатронутые поля не меняются")
	})

	t.Run("отсутствующий товар дает nil без ошибки", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListProducts", mock.Anything).Return(existing, nil).Once()

		service := NewCatalogService(repo, newNoopLogger())
		product, err := service.Update(context.Background(), "ghost", models.ProductPatch{})
		require.NoError(t, err)
		assert.Nil(t, product)
		repo.AssertNotCalled(t, "SaveProducts", mock.Anything, mock.Anything)
	})
}

func TestRemove(t *testing.T) {
	existing := []models.Product{
		{UID: "p1", OwnerUID: "u1"},
		{UID: "p2", OwnerUID: "u2"},
	}

	t.Run("товар удаляется из таблицы", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListProducts", mock.Anything).Return(existing, nil).Once()
		var saved []models.Product
		repo.On("SaveProducts", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).([]models.Product) }).
			Return(nil).Once()

		service := NewCatalogService(repo, newNoopLogger())
		require.NoError(t, service.Remove(context.Background(), "p1"))
		require.Len(t, saved, 1)
		assert.Equal(t, "p2", saved[0].UID)
	})

	t.Run("отсутствующий товар не является ошибкой", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListProducts", mock.Anything).Return(existing, nil).Once()
		repo.On("SaveProducts", mock.Anything, mock.Anything).Return(nil).Once()

		service := NewCatalogService(repo, newNoopLogger())
		require.NoError(t, service.Remove(context.Background(), "ghost"))
	})
}

func TestListByOwner(t *testing.T) {
	existing := []models.Product{
		{UID: "p3", OwnerUID: "u1"},
		{UID: "p2", OwnerUID: "u2"},
		{UID: "p1", OwnerUID: "u1"},
	}
	repo := new(RepoMock)
	repo.On("ListProducts", mock.Anything).Return(existing, nil).Twice()

	service := NewCatalogService(repo, newNoopLogger())

	products, err := service.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p3", products[0].UID, "порядок хранения сохраняется")
	assert.Equal(t, "p1", products[1].UID)

	empty, err := service.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
