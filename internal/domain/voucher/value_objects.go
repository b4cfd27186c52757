package voucher

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyCode       = errors.New("voucher code must not be empty")
	ErrCodeTooLong     = errors.New("voucher code exceeds maximum length")
	ErrInvalidCodeChar = errors.New("voucher code may only contain letters, digits, dash and underscore")
)

const MaxCodeLength = 50

var codeRegex = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

// Code is a normalized voucher code: trimmed and uppercased before validation,
// so lookups are case-insensitive to the user.
type Code struct {
	value string
}

func NewCode(raw string) (Code, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return Code{}, ErrEmptyCode
	}
	if len(s) > MaxCodeLength {
		return Code{}, ErrCodeTooLong
	}
	if !codeRegex.MatchString(s) {
		return Code{}, ErrInvalidCodeChar
	}
	return Code{value: s}, nil
}

func (c Code) String() string {
	return c.value
}
