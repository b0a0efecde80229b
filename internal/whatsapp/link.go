package whatsapp

import (
	"errors"
	"net/url"
	"strings"
	"unicode"
)

var ErrInvalidNumber = errors.New("invalid whatsapp number")

// NormalizeNumber keeps only the digits of a phone number.
// Numbers shorter than 10 or longer than 15 digits are rejected.
func NormalizeNumber(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 10 || len(digits) > 15 {
		return "", ErrInvalidNumber
	}
	return digits, nil
}

// DeepLink builds a wa.me link that opens a chat with message prefilled.
func DeepLink(phone string, message string) (string, error) {
	digits, err := NormalizeNumber(phone)
	if err != nil {
		return "", err
	}

	// wa.me does not decode '+' as a space
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return "https://wa.me/" + digits + "?text=" + text, nil
}
