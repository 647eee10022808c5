package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const apiKeyChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
const passwordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%"

func IsValidEmail(email string) bool {
	// Basic email validation regex pattern
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(email)
}

// GenerateApiKey returns a 32 character alphanumeric key for POS terminals.
func GenerateApiKey() string {
	return randomString(32, apiKeyChars)
}

// GeneratePassword returns an 8 character one-time password for new owner accounts.
func GeneratePassword() string {
	return randomString(8, passwordChars)
}

func randomString(length int, charset string) string {
	sb := strings.Builder{}
	sb.Grow(length)
	max := big.NewInt(int64(len(charset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform's entropy source is broken
			panic(err)
		}
		sb.WriteByte(charset[n.Int64()])
	}
	return sb.String()
}

func ProcessValidationErrors(err error) map[string]string {
	errorResponse := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorResponse
	}
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

// safely dereference pointer of type T, nil pointer return zero value or optional default
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

func NilIfEmpty[T comparable](ptr T) *T {
	var defaultZero T
	if ptr == defaultZero {
		return nil
	}
	return &ptr
}
