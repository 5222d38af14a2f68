package sharelink

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the entropy of a share token before encoding. 24 bytes keeps
// tokens comfortably above the 128-bit unguessability floor.
const tokenBytes = 24

// newToken returns a fresh URL-safe share token with no padding characters.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// requesterHash derives the stored fingerprint of a resolving client. Raw
// IPs and user agents never reach the database.
func requesterHash(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + "\x00" + userAgent))
	return hex.EncodeToString(sum[:])
}
