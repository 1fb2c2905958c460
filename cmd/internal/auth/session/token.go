package session

import (
	"notekeep/cmd/security/token"
)

// newOpaqueSessionToken generates the client-held token and the server-stored
// hash. The plain token must never be persisted or logged.
func newOpaqueSessionToken(nBytes int) (plain string, hashHex string, err error) {
	plain, err = token.NewOpaque(nBytes)
	if err != nil {
		return "", "", err
	}

	hashHex = token.HashSessionTokenHex(plain) // 64 hex chars

	return plain, hashHex, nil
}
