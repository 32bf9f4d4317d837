package kv

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// tablesBucket — единственный bucket с таблицами приложения.
var tablesBucket = []byte("tables")

// Bolt — файловое key-value хранилище поверх bbolt.
type Bolt struct {
	db *bolt.DB
}

// NewBolt открывает файл базы и создает bucket таблиц.
func NewBolt(path string) (*Bolt, error) {
	const op = "kv.NewBolt"

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tablesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Bolt{db: db}, nil
}

// Get возвращает значение по ключу или nil, если ключа нет.
func (b *Bolt) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "kv.Bolt.Get"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(tablesBucket).Get([]byte(key))
		if value == nil {
			return nil
		}
		out = make([]byte, len(value))
		copy(out, value)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Put сохраняет значение по ключу.
func (b *Bolt) Put(ctx context.Context, key string, value []byte) error {
	const op = "kv.Bolt.Put"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tablesBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет ключ; отсутствующий ключ не является ошибкой.
func (b *Bolt) Delete(ctx context.Context, key string) error {
	const op = "kv.Bolt.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tablesBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает файл базы.
func (b *Bolt) Close() error {
	return b.db.Close()
}
