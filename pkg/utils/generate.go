package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== VERIFICATION TOKEN ====================

// GenerateVerificationToken returns a 64-character hex string
// backed by 32 bytes of crypto/rand entropy.
func GenerateVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
