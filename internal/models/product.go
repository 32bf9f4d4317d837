// Package models содержит доменную модель товара каталога.
package models

import "time"

// Категории товаров. Значение вне списка приводится к CategoryGeneral.
const (
	CategoryGeneral  = "General"
	CategoryProducts = "Products"
	CategoryServices = "Services"
)

// Categories — допустимый набор категорий товара.
var Categories = []string{CategoryGeneral, CategoryProducts, CategoryServices}

// Product представляет товар витрины, принадлежащий одному аккаунту.
type Product struct {
	UID         string    `json:"id"`          // Уникальный идентификатор товара
	OwnerUID    string    `json:"owner_id"`    // Идентификатор аккаунта-владельца
	Name        string    `json:"name"`        // Название товара
	Description string    `json:"description"` // Описание
	Price       float64   `json:"price"`       // Цена, неотрицательная
	ImageURL    string    `json:"image_url"`   // Ссылка на изображение или data-URI
	Category    string    `json:"category"`    // Категория из фиксированного набора
	CreatedAt   time.Time `json:"created_at"`  // Дата создания
}

// ProductInput — входные данные создания товара. Price принимает
// произвольное JSON-значение: строка "25" станет числом 25, нечисловое
// значение — нулём.
type ProductInput struct {
	Name        string
	Description string
	Price       any
	ImageURL    string
	Category    string
}

// ProductPatch — частичное обновление товара, nil-поле означает «не менять».
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// StorefrontView — данные публичной витрины: владелец, товары и
// ссылка для связи через мессенджер.
type StorefrontView struct {
	Owner       AccountInfo `json:"owner"`
	Products    []Product   `json:"products"`
	ContactLink string      `json:"contact_link,omitempty"`
}
