package services

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 1000
	maxSlugLength        = 100
	minPasswordLength    = 8
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// cleanName trims v and checks its length in characters.
func cleanName(label, v string, min int) (string, error) {
	v = strings.TrimSpace(v)
	n := utf8.RuneCountInString(v)
	if n < min {
		if min <= 1 {
			return "", apperr.Validation("%s is required", label)
		}
		return "", apperr.Validation("%s must be at least %d characters", label, min)
	}
	if n > maxNameLength {
		return "", apperr.Validation("%s must be at most %d characters", label, maxNameLength)
	}
	return v, nil
}

func checkDescription(desc *string) error {
	if desc != nil && utf8.RuneCountInString(*desc) > maxDescriptionLength {
		return apperr.Validation("description must be at most %d characters", maxDescriptionLength)
	}
	return nil
}

func checkSlug(slug string) error {
	if len(slug) < 2 || len(slug) > maxSlugLength {
		return apperr.Validation("slug must be between 2 and %d characters", maxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return apperr.Validation("slug may only contain lowercase letters, digits and hyphens")
	}
	return nil
}

// normalizeEmail lowercases and validates an address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperr.Validation("invalid email address")
	}
	return email, nil
}
