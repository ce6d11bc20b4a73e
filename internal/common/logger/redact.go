package logger

import (
	"strings"
	"unicode"
)

// RedactPhone masks all but the last three digits of a phone number for safe logging.
// "0912345678" → "*******678", "+84 912 345 678" → "********678"
// Inputs with three digits or fewer are fully masked.
func RedactPhone(phone string) string {
	var digits []rune
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(digits)-3) + string(digits[len(digits)-3:])
}

// RedactName keeps the first letter of a name.
// "Nguyen" → "N***", "" → ""
func RedactName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	first := []rune(name)[0]
	return string(first) + "***"
}
