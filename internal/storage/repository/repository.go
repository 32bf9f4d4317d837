// Package repository реализует слой таблиц приложения поверх key-value
// хранилища: users, products и session. Каждая операция читает таблицу
// целиком, изменяет её в памяти и записывает целиком — побеждает
// последняя запись, блокировок на уровне таблиц нет. Это сознательное
// повторение модели исходного хранилища в рамках одного логического
// писателя.
//
// После записи таблиц users и session репозиторий публикует событие
// TopicStoreChanged в EventBus — явная замена браузерного события
// storage для наблюдателей сессии.
package repository

import (
	"github.com/asaskevich/EventBus"

	"github.com/boutiqhq/storefront-builder/internal/storage/kv"
)

// Ключи таблиц в key-value хранилище.
const (
	usersKey    = "users"
	productsKey = "products"
	sessionKey  = "session"
)

// TopicStoreChanged — топик EventBus, публикуемый после изменения
// таблиц users или session.
const TopicStoreChanged = "storage:changed"

// Storage инкапсулирует key-value хранилище и шину событий
// и реализует методы работы с таблицами аккаунтов, товаров и сессией.
type Storage struct {
	kv  kv.Store
	bus EventBus.Bus
}

// New создает Storage поверх key-value хранилища. Шина bus может быть
// nil — тогда события изменений не публикуются.
func New(store kv.Store, bus EventBus.Bus) *Storage {
	return &Storage{
		kv:  store,
		bus: bus,
	}
}

// notifyChanged публикует событие изменения таблиц, если шина задана.
func (s *Storage) notifyChanged() {
	if s.bus != nil {
		s.bus.Publish(TopicStoreChanged)
	}
}
