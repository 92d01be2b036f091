package pkg

import (
	"crypto/rand"
	"encoding/hex"
)

// LockToken returns a random fencing token for short-lived locks; the
// holder must present it again to release.
func LockToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
