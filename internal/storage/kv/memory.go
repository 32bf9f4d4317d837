package kv

import (
	"context"
	"fmt"
	"sync"
)

// Memory — потокобезопасное in-memory хранилище. Используется в тестах
// и как дефолтный бэкенд без внешних зависимостей.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory создает пустое in-memory хранилище.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
	}
}

// Get возвращает копию значения по ключу или nil, если ключа нет.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "kv.Memory.Get"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put сохраняет копию значения по ключу.
func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	const op = "kv.Memory.Put"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete удаляет ключ; отсутствующий ключ не является ошибкой.
func (m *Memory) Delete(ctx context.Context, key string) error {
	const op = "kv.Memory.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// Close ничего не освобождает, реализует контракт Store.
func (m *Memory) Close() error {
	return nil
}
