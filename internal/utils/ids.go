package utils

import (
	"regexp"

	"github.com/google/uuid"
)

var (
	// names we're willing to turn into file names, table lookups & routes
	validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// NewRandomID returns a new random (v4) UUID string.
func NewRandomID() string {
	return uuid.New().String()
}

// IsValidID returns if the given string is a UUID.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsValidName returns if the given string is safe to use as a resource name or api key;
// that is, letters, digits, underscores or dashes only.
func IsValidName(in string) bool {
	return validName.MatchString(in)
}
