// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
)

var (
	ErrMissingAdminKey = errors.New("missing admin key")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// AdminKeyHeader carries the admin key on admin API requests
const AdminKeyHeader = "X-Admin-Key"

// digest hashes a key so comparisons run over equal-length inputs
func digest(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}

// ValidateAdminKey checks a provided admin key against the configured one
// in constant time
func ValidateAdminKey(provided, expected string) error {
	provided = strings.TrimSpace(provided)
	if provided == "" {
		return ErrMissingAdminKey
	}
	if expected == "" || !hmac.Equal(digest(provided), digest(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}
