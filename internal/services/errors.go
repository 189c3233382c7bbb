package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Validation and lookup failures
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUserNotFound        = errors.New("user not found")
	ErrDogNotFound         = errors.New("dog not found")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrAchievementExists   = errors.New("achievement code already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthenticated     = errors.New("missing or invalid session")
)

// Entry-code redemption failures
var (
	ErrEntryCodeNotFound = errors.New("entry code not found")
	ErrEntryCodeUsed     = errors.New("entry code already used")
	ErrEntryCodeExpired  = errors.New("entry code expired")
)

// Event registration and attendance failures
var (
	ErrEventNotFound        = errors.New("event not found or inactive")
	ErrEventPassed          = errors.New("event already passed")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrEventFull            = errors.New("event is full")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrAlreadyConfirmed     = errors.New("attendance already confirmed")
)

// ErrCodeGeneration means no unique random code was found within the attempt cap
var ErrCodeGeneration = errors.New("could not generate a unique code")

// isDuplicateKey reports a unique constraint violation. TranslateError covers
// most dialects; the string match catches drivers gorm does not translate.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "duplicate entry") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
