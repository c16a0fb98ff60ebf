package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Normalize приводит номер к E.164 (+32470000000). defaultRegion используется для номеров
// без международного префикса. Если номер не удалось разобрать, возвращается исходная
// строка без пробелов, чтобы сравнение оставалось детерминированным.
func Normalize(raw string, defaultRegion string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(raw, strings.ToUpper(defaultRegion))
	if err != nil || !phonenumbers.IsPossibleNumber(parsed) {
		return strings.Join(strings.Fields(raw), "")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// IsValid проверяет, что номер разбирается и является возможным номером
func IsValid(raw string, defaultRegion string) bool {
	parsed, err := phonenumbers.Parse(strings.TrimSpace(raw), strings.ToUpper(defaultRegion))
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(parsed)
}
