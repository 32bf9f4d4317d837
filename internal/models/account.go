// Package models содержит доменную модель продавца (аккаунта магазина),
// включающую учётные данные, профиль магазина и статистику посещений.
// Структуры сериализуются в JSON и хранятся целиком в таблице users
// key-value хранилища.
package models

import "time"

// Stats хранит счётчики использования витрины.
type Stats struct {
	ViewsCount    int        `json:"views_count"`               // Количество просмотров витрины
	LastVisitDate *time.Time `json:"last_visit_date,omitempty"` // Дата последнего посещения, nil — визитов не было
	OrdersCount   int        `json:"orders_count"`              // Количество заказов (зарезервировано)
}

// Account представляет зарегистрированного продавца и его магазин.
type Account struct {
	UID             string    `json:"id"`               // Уникальный идентификатор аккаунта
	Email           string    `json:"email"`            // Электронная почта (уникальная, сравнение точное)
	PasswordHash    string    `json:"password_hash"`    // Bcrypt-хэш пароля
	Name            string    `json:"name"`             // Отображаемое имя продавца
	ShopName        string    `json:"shop_name"`        // Название магазина
	ShopDescription string    `json:"shop_description"` // Описание магазина
	PhoneNumber     string    `json:"phone_number"`     // Контактный телефон
	WhatsappNumber  string    `json:"whatsapp_number"`  // Номер для мессенджера (wa.me)
	ShopSlug        string    `json:"shop_slug"`        // URL-безопасный идентификатор витрины (уникальный)
	Plan            string    `json:"plan"`             // Тариф, free или платный
	Role            string    `json:"role"`             // Роль, admin или user
	Active          bool      `json:"active"`           // Флаг активности аккаунта
	CreatedAt       time.Time `json:"created_at"`       // Дата создания
	Stats           Stats     `json:"stats"`            // Статистика витрины
}

// AccountInfo — публичное представление аккаунта для HTTP-ответов,
// без хэша пароля.
type AccountInfo struct {
	UID             string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	ShopName        string    `json:"shop_name"`
	ShopDescription string    `json:"shop_description"`
	PhoneNumber     string    `json:"phone_number"`
	WhatsappNumber  string    `json:"whatsapp_number"`
	ShopSlug        string    `json:"shop_slug"`
	Plan            string    `json:"plan"`
	Role            string    `json:"role"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	Stats           Stats     `json:"stats"`
}

// Info возвращает публичное представление аккаунта.
func (a Account) Info() AccountInfo {
	return AccountInfo{
		UID:             a.UID,
		Email:           a.Email,
		Name:            a.Name,
		ShopName:        a.ShopName,
		ShopDescription: a.ShopDescription,
		PhoneNumber:     a.PhoneNumber,
		WhatsappNumber:  a.WhatsappNumber,
		ShopSlug:        a.ShopSlug,
		Plan:            a.Plan,
		Role:            a.Role,
		Active:          a.Active,
		CreatedAt:       a.CreatedAt,
		Stats:           a.Stats,
	}
}

// RegisterInput — входные данные регистрации нового продавца.
// Пароль приходит в открытом виде и хэшируется сервисом аккаунтов.
type RegisterInput struct {
	Email           string
	Password        string
	Name            string
	ShopName        string
	ShopDescription string
	PhoneNumber     string
	WhatsappNumber  string
}

// AccountPatch — частичное обновление профиля. Nil-поле означает
// «не менять». Изменение ShopName влечёт перегенерацию slug.
type AccountPatch struct {
	Name            *string `json:"name,omitempty"`
	ShopName        *string `json:"shop_name,omitempty"`
	ShopDescription *string `json:"shop_description,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
	WhatsappNumber  *string `json:"whatsapp_number,omitempty"`
	Plan            *string `json:"plan,omitempty"`
}
