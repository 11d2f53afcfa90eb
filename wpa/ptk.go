package wpa

import (
	"bytes"
	"net"

	"github.com/wlanstack/wlansta/crypto"
)

const ptkLabel = "Pairwise key expansion"

// PTK holds the three pairwise subkeys derived from the PMK: the key
// confirmation key signing handshake MICs, the key encryption key
// protecting key data, and the temporal key handed to the data path.
type PTK struct {
	KCK [16]byte
	KEK [16]byte
	TK  [16]byte
}

// DerivePTK expands the PMK into a PTK. Addresses and nonces are fed to
// the PRF lowest-first, which makes the derivation symmetric: swapping
// the authenticator and supplicant arguments yields the same PTK.
func DerivePTK(pmk []byte, aa, spa net.HardwareAddr, anonce, snonce [32]byte) *PTK {
	var seed [76]byte

	if bytes.Compare(aa, spa) < 0 {
		copy(seed[0:6], aa)
		copy(seed[6:12], spa)
	} else {
		copy(seed[0:6], spa)
		copy(seed[6:12], aa)
	}

	if bytes.Compare(anonce[:], snonce[:]) < 0 {
		copy(seed[12:44], anonce[:])
		copy(seed[44:76], snonce[:])
	} else {
		copy(seed[12:44], snonce[:])
		copy(seed[44:76], anonce[:])
	}

	ptk := &PTK{}
	expanded := crypto.PRF(pmk, ptkLabel, seed[:], 48)
	copy(ptk.KCK[:], expanded[0:16])
	copy(ptk.KEK[:], expanded[16:32])
	copy(ptk.TK[:], expanded[32:48])
	return ptk
}
