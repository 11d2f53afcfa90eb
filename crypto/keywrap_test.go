package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 3394 section 4.1 test vector.
func TestKeyWrap(t *testing.T) {
	kek, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	plain, _ := hex.DecodeString("00112233445566778899aabbccddeeff")

	wrapped, err := KeyWrap(kek, plain)
	require.NoError(t, err)
	assert.Equal(t,
		"1fa68b0a8112b447aef34bd8fb5a7b829d3e862371d2cfe5",
		hex.EncodeToString(wrapped))

	unwrapped, err := KeyUnwrap(kek, wrapped)
	require.NoError(t, err)
	assert.Equal(t, plain, unwrapped)
}

func TestKeyUnwrapTampered(t *testing.T) {
	kek, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	plain, _ := hex.DecodeString("00112233445566778899aabbccddeeff")

	wrapped, err := KeyWrap(kek, plain)
	require.NoError(t, err)

	wrapped[9] ^= 0x01
	_, err = KeyUnwrap(kek, wrapped)
	assert.Equal(t, ErrWrapIntegrity, err)
}

func TestKeyWrapLength(t *testing.T) {
	kek := make([]byte, 16)

	_, err := KeyWrap(kek, make([]byte, 7))
	assert.Equal(t, ErrWrapLength, err)
	_, err = KeyWrap(kek, make([]byte, 17))
	assert.Equal(t, ErrWrapLength, err)
	_, err = KeyUnwrap(kek, make([]byte, 8))
	assert.Equal(t, ErrWrapLength, err)
}
