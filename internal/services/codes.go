package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"gorm.io/gorm"
	"gorm.io/hints"
)

const (
	codeAlphabet        = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	confirmationCodeLen = 6
	entryCodeLen        = 8
	entryCodePrefix     = "GUAU-"
	maxCodeAttempts     = 10
)

// Code sources. Tests swap these to force collisions.
var (
	generateConfirmationCode = func() (string, error) {
		return randomCode(confirmationCodeLen)
	}
	generateEntryCode = func() (string, error) {
		code, err := randomCode(entryCodeLen)
		if err != nil {
			return "", err
		}
		return entryCodePrefix + code, nil
	}
)

// NormalizeCode trims and uppercases a user supplied code
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// randomCode draws n characters from the base-36 alphabet using crypto/rand
func randomCode(n int) (string, error) {
	base := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b), nil
}

// uniqueCode generates codes until one is absent from column, giving up after
// maxCodeAttempts with ErrCodeGeneration
func uniqueCode(ctx context.Context, db *gorm.DB, model any, column string, generate func() (string, error)) (string, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := generate()
		if err != nil {
			return "", err
		}

		var count int64
		err = db.WithContext(ctx).
			Clauses(hints.CommentBefore("select", "unique_code_check")).
			Model(model).
			Where(column+" = ?", code).
			Count(&count).Error
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrCodeGeneration, maxCodeAttempts)
}
