package security

import (
	"bitwise74/expense-api/pkg/util"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

const resetTokenSize = 32

// ResetToken is a freshly minted password reset token. Plain is sent to the
// user, Hash is what gets stored.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

func MakeResetToken(ttl time.Duration) (*ResetToken, error) {
	if ttl <= 0 {
		return nil, errors.New("reset token ttl must be positive")
	}

	plain, err := util.GenerateToken(resetTokenSize)
	if err != nil {
		return nil, err
	}

	return &ResetToken{
		Plain:     plain,
		Hash:      HashResetToken(plain),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}, nil
}

// HashResetToken returns the hex encoded SHA-256 of a plain reset token
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
