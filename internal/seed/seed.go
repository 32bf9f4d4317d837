// Package seed наполняет пустое хранилище демонстрационными магазинами.
// Запись идет напрямую через репозиторий, указатель сессии не трогается.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boutiqhq/storefront-builder/internal/lib/password"
	"github.com/boutiqhq/storefront-builder/internal/lib/slug"
	"github.com/boutiqhq/storefront-builder/internal/models"
)

// Repository описывает нужную seed-у часть репозитория таблиц.
type Repository interface {
	ListUsers(ctx context.Context) ([]models.Account, error)
	SaveUsers(ctx context.Context, users []models.Account) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	SaveProducts(ctx context.Context, products []models.Product) error
}

type demoMerchant struct {
	name     string
	shopName string
	desc     string
	phone    string
	category string
}

var demoMerchants = []demoMerchant{
	{"Aïcha", "Chez Aïcha", "Mode et accessoires pour femmes", "+221771234501", models.CategoryProducts},
	{"Bella", "Couture Bella", "Tenues sur mesure, livraison rapide", "+221771234502", models.CategoryServices},
	{"Moussa", "TechPhone", "Téléphones et accessoires au meilleur prix", "+221771234503", models.CategoryProducts},
	{"Fatou", "Snack Délice", "Plats maison et jus naturels", "+221771234504", models.CategoryGeneral},
}

// Run создает демонстрационные аккаунты и товары, если таблица users
// пуста. Повторный запуск на непустом хранилище ничего не меняет.
func Run(ctx context.Context, repo Repository, log *slog.Logger) error {
	const op = "seed.Run"

	users, err := repo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(users) > 0 {
		log.Info("seed skipped, users table is not empty", slog.Int("users", len(users)))
		return nil
	}

	hashed, err := password.GetHash("demo1234")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	var products []models.Product
	for i, m := range demoMerchants {
		account := models.Account{
			UID:             uuid.NewString(),
			Email:           fmt.Sprintf("demo%d@boutiqhq.example", i+1),
			PasswordHash:    hashed,
			Name:            m.name,
			ShopName:        m.shopName,
			ShopDescription: m.desc,
			PhoneNumber:     m.phone,
			WhatsappNumber:  m.phone,
			ShopSlug:        slug.Make(m.shopName),
			Plan:            "free",
			Role:            "user",
			Active:          true,
			CreatedAt:       now,
		}
		users = append(users, account)

		for j := 1; j <= 4; j++ {
			products = append(products, models.Product{
				UID:         uuid.NewString(),
				OwnerUID:    account.UID,
				Name:        fmt.Sprintf("%s — article %d", m.shopName, j),
				Description: fmt.Sprintf("Article %d de la boutique %s", j, m.shopName),
				Price:       float64(1000 * j),
				Category:    m.category,
				CreatedAt:   now,
			})
		}
	}

	if err := repo.SaveUsers(ctx, users); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := repo.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("seeded demo merchants",
		slog.Int("users", len(users)), slog.Int("products", len(products)))
	return nil
}
