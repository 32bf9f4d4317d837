// Package kv определяет абстракцию key-value хранилища таблиц
// приложения и её реализации: in-memory, bbolt и postgres.
package kv

import "context"

// Store — минимальный контракт key-value хранилища. Get возвращает
// nil без ошибки, если ключа нет.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
