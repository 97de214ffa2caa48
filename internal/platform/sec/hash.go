// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GenerateSecureToken returns a random hex string carrying n bytes of entropy.
func GenerateSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashSecret hashes a one-time secret (e.g. a confirmation code) with bcrypt.
func HashSecret(secret string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash secret: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckSecretHash compares a plain-text secret with its hashed version.
func CheckSecretHash(secret, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(secret))
	return err == nil
}
