// Package id generates the opaque identifiers used for characters.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a random (version 4) UUID encoded as 26 lowercase base32 characters.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}

// Validate reports whether value is a well-formed identifier produced by NewID.
func Validate(value string) error {
	if len(value) != 26 {
		return fmt.Errorf("id must be 26 characters, got %d", len(value))
	}
	decoded, err := encoding.DecodeString(strings.ToUpper(value))
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	if _, err := uuid.FromBytes(decoded); err != nil {
		return fmt.Errorf("parse id: %w", err)
	}
	return nil
}
