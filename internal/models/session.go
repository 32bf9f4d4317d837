// Package models содержит модель указателя сессии.
package models

// Session — указатель текущей сессии клиента: идентификатор аккаунта,
// выполнившего вход. Отсутствие записи в таблице session означает,
// что никто не авторизован.
type Session struct {
	UserUID string `json:"userId"`
}
