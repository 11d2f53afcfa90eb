package crypto

import (
	"crypto/aes"
	"encoding/binary"
	"errors"
)

// AES key wrap per RFC 3394, used for the encrypted key data field of
// handshake message 3.

var (
	ErrWrapLength    = errors.New("wrapped data length must be a non-zero multiple of 8")
	ErrWrapIntegrity = errors.New("key unwrap integrity check failed")
)

var keyWrapIV = [8]byte{0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6, 0xa6}

// KeyUnwrap unwraps data with the KEK, verifying the RFC 3394 integrity
// value. The input must be at least 16 bytes and a multiple of 8.
func KeyUnwrap(kek []byte, wrapped []byte) ([]byte, error) {
	if len(wrapped) < 16 || len(wrapped)%8 != 0 {
		return nil, ErrWrapLength
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	n := len(wrapped)/8 - 1
	var a [8]byte
	copy(a[:], wrapped[:8])
	r := make([]byte, n*8)
	copy(r, wrapped[8:])

	var buf [16]byte
	for j := 5; j >= 0; j-- {
		for i := n; i >= 1; i-- {
			t := uint64(n*j + i)
			copy(buf[:8], a[:])
			binary.BigEndian.PutUint64(buf[:8], binary.BigEndian.Uint64(buf[:8])^t)
			copy(buf[8:], r[(i-1)*8:i*8])
			block.Decrypt(buf[:], buf[:])
			copy(a[:], buf[:8])
			copy(r[(i-1)*8:i*8], buf[8:])
		}
	}

	if a != keyWrapIV {
		return nil, ErrWrapIntegrity
	}
	return r, nil
}

// KeyWrap wraps data with the KEK. The input must be at least 16 bytes
// and a multiple of 8. This is the authenticator side of KeyUnwrap.
func KeyWrap(kek []byte, data []byte) ([]byte, error) {
	if len(data) < 16 || len(data)%8 != 0 {
		return nil, ErrWrapLength
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	n := len(data) / 8
	a := keyWrapIV
	r := make([]byte, n*8)
	copy(r, data)

	var buf [16]byte
	for j := 0; j <= 5; j++ {
		for i := 1; i <= n; i++ {
			copy(buf[:8], a[:])
			copy(buf[8:], r[(i-1)*8:i*8])
			block.Encrypt(buf[:], buf[:])
			t := uint64(n*j + i)
			copy(a[:], buf[:8])
			binary.BigEndian.PutUint64(a[:], binary.BigEndian.Uint64(a[:])^t)
			copy(r[(i-1)*8:i*8], buf[8:])
		}
	}

	out := make([]byte, 0, 8+n*8)
	out = append(out, a[:]...)
	return append(out, r...), nil
}
