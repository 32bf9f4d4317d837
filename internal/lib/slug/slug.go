// Package slug реализует нормализацию произвольного названия магазина
// в URL-безопасный идентификатор: строчные ASCII-буквы и цифры,
// разделённые одиночными дефисами.
//
// Диакритика снимается через разложение NFD и отбрасывание
// комбинируемых знаков, все прочие символы схлопываются в дефис.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make возвращает slug для произвольной строки. Для строки без букв
// и цифр результат пуст — вызывающая сторона обязана подставить
// запасное значение до проверки уникальности.
//
// Пример: "Chez Aïcha" -> "chez-aicha".
func Make(label string) string {
	decomposed := norm.NFD.String(strings.ToLower(label))
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, decomposed)
	return strings.Trim(nonAlnum.ReplaceAllString(stripped, "-"), "-")
}
