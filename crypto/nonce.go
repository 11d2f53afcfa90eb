package crypto

import (
	"crypto/rand"
)

// Nonce returns 32 bytes of cryptographically random material, used for
// the supplicant nonce of the 4-way handshake.
func Nonce() (nonce [NonceLen]byte) {
	if _, err := rand.Read(nonce[:]); err != nil {
		// crypto/rand only fails when the platform source is broken,
		// at which point no key material can be trusted.
		panic(err)
	}
	return nonce
}
