package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

const singleUseTokenBytes = 32

// GenerateSingleUseToken creates a cryptographically secure random
// token and its SHA-256 hash. Only the hash is ever persisted; the raw
// value goes to the user out-of-band (email link), so a database leak
// exposes no usable tokens.
func GenerateSingleUseToken() (rawToken, hashedToken string, err error) {
	b := make([]byte, singleUseTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}

	rawToken = base64.URLEncoding.EncodeToString(b)
	return rawToken, HashSingleUseToken(rawToken), nil
}

// HashSingleUseToken returns the hex-encoded SHA-256 digest of a raw
// single-use token, the form stored on the user record.
func HashSingleUseToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
