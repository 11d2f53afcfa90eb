package crypto

import (
	"crypto/hmac"
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"
)

const (
	PMKLen   = 32
	MICLen   = 16
	NonceLen = 32
)

// DerivePMK derives the pairwise master key from a passphrase and SSID
// with PBKDF2-SHA1 and 4096 iterations, as defined by IEEE 802.11i.
func DerivePMK(passphrase, ssid string) [PMKLen]byte {
	var pmk [PMKLen]byte
	copy(pmk[:], pbkdf2.Key([]byte(passphrase), []byte(ssid), 4096, PMKLen, sha1.New))
	return pmk
}

// PRF implements the IEEE 802.11i pseudo random function, expanding key
// material to size bytes with HMAC-SHA1 over label || 0x00 || data || i.
func PRF(key []byte, label string, data []byte, size int) []byte {
	out := make([]byte, 0, ((size+sha1.Size-1)/sha1.Size)*sha1.Size)

	msg := make([]byte, 0, len(label)+1+len(data)+1)
	msg = append(msg, label...)
	msg = append(msg, 0x00)
	msg = append(msg, data...)
	msg = append(msg, 0x00)

	for i := 0; len(out) < size; i++ {
		msg[len(msg)-1] = byte(i)
		mac := hmac.New(sha1.New, key)
		mac.Write(msg)
		out = mac.Sum(out)
	}

	return out[:size]
}

// MIC computes the message integrity code of an EAPOL frame: HMAC-SHA1
// keyed by the KCK, truncated to 16 bytes. The same keyed hash is used
// for both descriptor versions.
func MIC(kck []byte, frame []byte) [MICLen]byte {
	mac := hmac.New(sha1.New, kck)
	mac.Write(frame)

	var mic [MICLen]byte
	copy(mic[:], mac.Sum(nil))
	return mic
}

// MICEqual compares two MICs in constant time.
func MICEqual(a, b []byte) bool {
	return hmac.Equal(a, b)
}
