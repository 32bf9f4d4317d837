// Package phone содержит вспомогательные функции для подготовки
// телефонного номера к использованию в deep-link мессенджера.
package phone

import (
	"net/url"
	"strings"
)

// Sanitize убирает из номера все пробельные символы и ведущий «+».
// Формат цифр не проверяется: результат используется как есть в ссылке wa.me.
func Sanitize(number string) string {
	cleaned := strings.Join(strings.Fields(number), "")
	return strings.TrimPrefix(cleaned, "+")
}

// WhatsAppLink собирает ссылку вида https://wa.me/<digits>?text=<urlencoded>.
// Пустой text опускает query-параметр, пустой номер даёт пустую ссылку.
func WhatsAppLink(number, text string) string {
	digits := Sanitize(number)
	if digits == "" {
		return ""
	}
	link := "https://wa.me/" + digits
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}
