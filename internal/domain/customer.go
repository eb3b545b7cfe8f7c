package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Customer holds the guest details captured with a booking.
// It is a value: each booking carries its own copy.
type Customer struct {
	Name  string
	Phone string
	City  string
	State string
}

// Validate rejects text that would break a store record.
func (c Customer) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"phone", c.Phone},
		{"city", c.City},
		{"state", c.State},
	}
	for _, f := range fields {
		if err := ValidateText(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateText reports ErrInvalidField for text a store record could only
// hold quoted: a delimiter, quote or line break anywhere, or a leading space.
func ValidateText(field, value string) error {
	if strings.ContainsAny(value, ",\"\r\n") {
		return fmt.Errorf("%w: %s must not contain commas, quotes or line breaks", ErrInvalidField, field)
	}
	if r, _ := utf8.DecodeRuneInString(value); unicode.IsSpace(r) {
		return fmt.Errorf("%w: %s must not start with a space", ErrInvalidField, field)
	}
	if value == `\.` {
		return fmt.Errorf("%w: %s must not be %q", ErrInvalidField, field, value)
	}
	return nil
}
