package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres — key-value хранилище поверх таблицы storefront_kv.
// Схему создают миграции, см. internal/migrations.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres открывает подключение к postgres и проверяет его ping-ом.
func NewPostgres(connectionString string) (*Postgres, error) {
	const op = "kv.NewPostgres"

	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Postgres{DB: db}, nil
}

// Get возвращает значение по ключу или nil, если ключа нет.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "kv.Postgres.Get"

	var value []byte
	err := p.DB.QueryRowContext(ctx,
		`SELECT value FROM storefront_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

// Put сохраняет значение по ключу, перезаписывая существующее.
func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	const op = "kv.Postgres.Put"

	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO storefront_kv (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет ключ; отсутствующий ключ не является ошибкой.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	const op = "kv.Postgres.Delete"

	_, err := p.DB.ExecContext(ctx,
		`DELETE FROM storefront_kv WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает подключение к базе.
func (p *Postgres) Close() error {
	return p.DB.Close()
}
