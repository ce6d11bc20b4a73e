package validateprofile

import (
	"strings"
	"unicode"
)

// PhoneMessages returns the problems with a phone number, at most one per rule
// stage. A leading minus or a foreign character stops further checks.
func PhoneMessages(phone string) []string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return []string{"Phone number is required"}
	}
	if strings.HasPrefix(trimmed, "-") {
		return []string{"Phone number cannot be negative (cannot start with minus sign)"}
	}

	var invalid strings.Builder
	for _, r := range phone {
		if (r < '0' || r > '9') && r != '+' && !unicode.IsSpace(r) {
			invalid.WriteRune(r)
		}
	}
	if invalid.Len() > 0 {
		return []string{"Phone number can only contain digits, + (for country code), and spaces. Invalid characters found: " + invalid.String()}
	}

	d := DigitsOnly(phone)
	switch len(d) {
	case 10:
		if !strings.HasPrefix(d, "0") {
			return []string{"10-digit phone number must start with '0' (Vietnam format)"}
		}
		if !hasPrefix(d[:2]) {
			return []string{"Phone number prefix must be one of: " + listing(PhonePrefixes)}
		}
	case 11:
		if !strings.HasPrefix(d, CountryCode) {
			return []string{"11-digit phone number (with country code) must start with '84'"}
		}
		if !hasPrefix(d[2:4]) {
			return []string{"Phone number prefix (after +84) must be one of: " + listing(PhonePrefixes)}
		}
	default:
		return []string{"Phone number must be 10 or 11 digits (Vietnam format: 0xxxxxxxxx or +84xxxxxxxxx)"}
	}
	return nil
}

// DigitsOnly strips everything but digits.
func DigitsOnly(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

func hasPrefix(p string) bool {
	for _, v := range PhonePrefixes {
		if v == p {
			return true
		}
	}
	return false
}
