// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides password hashing and verification utilities
// using the scrypt key derivation function.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Scrypt parameters. Stored hashes carry no parameters, so changing any of
// these invalidates every existing password.
const (
	ScryptN       = 16384
	ScryptR       = 8
	ScryptP       = 1
	ScryptKeyLen  = 64
	ScryptSaltLen = 16
)

// ErrMalformedHash is returned when a stored hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives a salted scrypt hash of the password.
// Returns encoded hash in format: <hex key>.<hex salt>
func HashPassword(password string) (string, error) {
	salt := make([]byte, ScryptSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	key, err := derive(password, saltHex)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(key) + "." + saltHex, nil
}

// CheckPassword verifies a password against an encoded scrypt hash.
// Uses constant-time comparison to prevent timing attacks.
func CheckPassword(password, encodedHash string) (bool, error) {
	keyHex, saltHex, ok := strings.Cut(encodedHash, ".")
	if !ok || keyHex == "" || saltHex == "" {
		return false, ErrMalformedHash
	}

	expected, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("%w: decoding key: %v", ErrMalformedHash, err)
	}
	if _, err := hex.DecodeString(saltHex); err != nil {
		return false, fmt.Errorf("%w: decoding salt: %v", ErrMalformedHash, err)
	}
	if len(expected) != ScryptKeyLen {
		return false, fmt.Errorf("%w: key length %d", ErrMalformedHash, len(expected))
	}

	key, err := derive(password, saltHex)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

// derive runs scrypt with the hex text of the salt as salt input,
// matching hashes created by earlier deployments.
func derive(password, saltHex string) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), []byte(saltHex), ScryptN, ScryptR, ScryptP, ScryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return key, nil
}
