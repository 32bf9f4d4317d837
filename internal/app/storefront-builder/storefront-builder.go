// Package storefrontbuilder собирает приложение: хранилище, кэш, шину
// событий, сервисы и HTTP-сервер.
package storefrontbuilder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/boutiqhq/storefront-builder/internal/cache"
	"github.com/boutiqhq/storefront-builder/internal/config"
	"github.com/boutiqhq/storefront-builder/internal/lib/jwt"
	"github.com/boutiqhq/storefront-builder/internal/lib/rabbitmq"
	"github.com/boutiqhq/storefront-builder/internal/lib/sl"
	"github.com/boutiqhq/storefront-builder/internal/migrations"
	"github.com/boutiqhq/storefront-builder/internal/models"
	"github.com/boutiqhq/storefront-builder/internal/seed"
	accountservice "github.com/boutiqhq/storefront-builder/internal/services/account"
	catalogservice "github.com/boutiqhq/storefront-builder/internal/services/catalog"
	sessionservice "github.com/boutiqhq/storefront-builder/internal/services/session"
	storefrontservice "github.com/boutiqhq/storefront-builder/internal/services/storefront"
	"github.com/boutiqhq/storefront-builder/internal/storage/kv"
	"github.com/boutiqhq/storefront-builder/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы, требующие закрытия.
type App struct {
	server      *http.Server
	logger      *slog.Logger
	store       kv.Store
	amqpConn    *amqp.Connection
	unsubscribe func()
}

// New собирает приложение по конфигу: выбирает бэкенд хранилища,
// подключает Redis и RabbitMQ, регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	amqpConn, publisher, err := openPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}

	bus := EventBus.New()
	repo := repository.New(store, bus)

	accountService := accountservice.NewAccountService(repo, publisher, logger)
	catalogService := catalogservice.NewCatalogService(repo, logger)
	sessionService := sessionservice.NewSessionService(accountService, bus, logger)
	storefrontService := storefrontservice.NewStorefrontService(
		accountService, catalogService, cacheRedis, publisher, logger)

	unsubscribe, err := sessionService.Subscribe(func(account *models.Account) {
		if account == nil {
			logger.Debug("session observer: no active session")
			return
		}
		logger.Debug("session observer: active session",
			slog.String("uid", account.UID), slog.String("email", account.Email))
	})
	if err != nil {
		return nil, err
	}

	if cfg.SeedDemo {
		if err := seed.Run(ctx, repo, logger); err != nil {
			return nil, err
		}
	}

	tokenMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, tokenMaker,
		accountService, catalogService, storefrontService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:      srv,
		logger:      logger,
		store:       store,
		amqpConn:    amqpConn,
		unsubscribe: unsubscribe,
	}, nil
}

// openStore открывает key-value хранилище по cfg.Driver:
// memory, bolt или postgres. Для postgres прогоняются миграции.
func openStore(cfg *config.Config) (kv.Store, error) {
	const op = "app.openStore"

	switch cfg.Driver {
	case "", "memory":
		return kv.NewMemory(), nil
	case "bolt":
		return kv.NewBolt(cfg.Path)
	case "postgres":
		pg, err := kv.NewPostgres(cfg.ConnectionString)
		if err != nil {
			return nil, err
		}
		migrationsPath := cfg.MigrationsPath
		if migrationsPath == "" {
			migrationsPath = "./migrations"
		}
		if err := migrations.Run(pg.DB, migrationsPath); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Driver)
	}
}

// openPublisher подключается к RabbitMQ и объявляет exchange событий.
// Пустой cfg.AMQPConnection отключает публикацию.
func openPublisher(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, *rabbitmq.Publisher, error) {
	const op = "app.openPublisher"

	if cfg.AMQPConnection == "" {
		logger.Info("amqp connection is not configured, events are disabled")
		return nil, rabbitmq.NewPublisher(nil, ""), nil
	}

	conn, err := amqp.Dial(cfg.AMQPConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.ExchangeDeclare(cfg.EventsExchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return conn, rabbitmq.NewPublisher(ch, cfg.EventsExchange), nil
}

// Run запускает HTTP-сервер и блокируется до отмены ctx, после чего
// гасит сервер и освобождает ресурсы.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close amqp connection", sl.Err(err))
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
