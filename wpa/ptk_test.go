package wpa

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanstack/wlansta/crypto"
)

func TestDerivePTKSymmetry(t *testing.T) {
	pmk := crypto.DerivePMK("secret passphrase", "testing")
	aa := net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	spa := net.HardwareAddr{0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb}

	var anonce, snonce [32]byte
	for i := range anonce {
		anonce[i] = byte(i)
		snonce[i] = byte(0xff - i)
	}

	a := DerivePTK(pmk[:], aa, spa, anonce, snonce)
	b := DerivePTK(pmk[:], spa, aa, snonce, anonce)
	require.NotNil(t, a)
	assert.Equal(t, a, b)
}

func TestDerivePTKBindsInputs(t *testing.T) {
	pmk := crypto.DerivePMK("secret passphrase", "testing")
	aa := net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	spa := net.HardwareAddr{0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb}

	var anonce, snonce [32]byte
	base := DerivePTK(pmk[:], aa, spa, anonce, snonce)

	snonce[0] = 0x01
	assert.NotEqual(t, base, DerivePTK(pmk[:], aa, spa, anonce, snonce))

	snonce[0] = 0x00
	other := crypto.DerivePMK("other passphrase", "testing")
	assert.NotEqual(t, base, DerivePTK(other[:], aa, spa, anonce, snonce))
}

func TestGTKRoundTrip(t *testing.T) {
	gtk := &GTK{
		Key:   []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		Index: 2,
		Tx:    true,
	}

	parsed := ParseGTK(EncodeGTK(gtk))
	require.NotNil(t, parsed)
	assert.Equal(t, gtk.Key, parsed.Key)
	assert.Equal(t, uint8(2), parsed.Index)
	assert.True(t, parsed.Tx)
}

func TestParseGTKSkipsOtherEntries(t *testing.T) {
	keyData := append([]byte{
		0x30, 0x02, 0x01, 0x00, // an unrelated RSN element
		0xdd, 0x04, 0x00, 0x50, 0xf2, 0x01, // a vendor entry with the wrong OUI
	}, EncodeGTK(&GTK{Key: []byte{0xaa, 0xbb, 0xcc, 0xdd}, Index: 1})...)

	parsed := ParseGTK(keyData)
	require.NotNil(t, parsed)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc, 0xdd}, parsed.Key)
	assert.Equal(t, uint8(1), parsed.Index)
	assert.False(t, parsed.Tx)
}

func TestParseGTKAbsent(t *testing.T) {
	assert.Nil(t, ParseGTK(nil))
	assert.Nil(t, ParseGTK([]byte{0x30, 0x02, 0x01, 0x00}))
	// truncated entry
	assert.Nil(t, ParseGTK([]byte{0xdd, 0x20, 0x00, 0x0f, 0xac}))
}
