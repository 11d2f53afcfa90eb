package wpa

import (
	"encoding/binary"
	"errors"
)

// EAPOL-Key frame layout: a fixed 99 byte header followed by the
// variable length key data field. Multi-byte fields are big endian,
// nonces and IVs are raw byte arrays.
const (
	ProtocolVersion = 0x01
	PacketTypeKey   = 0x03

	DescriptorTypeWPA = 0xfe
	DescriptorTypeRSN = 0x02

	headerLen = 99
)

// key information flags (IEEE 802.11i)
const (
	KeyInfoVersionMask      = 0x0007
	KeyInfoPairwise         = 1 << 3
	KeyInfoInstall          = 1 << 6
	KeyInfoAck              = 1 << 7
	KeyInfoMIC              = 1 << 8
	KeyInfoSecure           = 1 << 9
	KeyInfoError            = 1 << 10
	KeyInfoRequest          = 1 << 11
	KeyInfoEncryptedKeyData = 1 << 12
)

var (
	ErrShortFrame  = errors.New("EAPOL frame shorter than the fixed key header")
	ErrNotKeyFrame = errors.New("not an EAPOL-Key frame")
)

// KeyFrame is a decoded EAPOL-Key frame.
type KeyFrame struct {
	Version        uint8
	Type           uint8
	Length         uint16
	DescriptorType uint8
	KeyInfo        uint16
	KeyLength      uint16
	ReplayCounter  uint64
	Nonce          [32]byte
	IV             [16]byte
	RSC            uint64
	ID             uint64
	MIC            [16]byte
	KeyDataLength  uint16
	KeyData        []byte
}

func (f *KeyFrame) HasAck() bool       { return f.KeyInfo&KeyInfoAck != 0 }
func (f *KeyFrame) HasMIC() bool       { return f.KeyInfo&KeyInfoMIC != 0 }
func (f *KeyFrame) IsSecure() bool     { return f.KeyInfo&KeyInfoSecure != 0 }
func (f *KeyFrame) IsPairwise() bool   { return f.KeyInfo&KeyInfoPairwise != 0 }
func (f *KeyFrame) IsEncrypted() bool  { return f.KeyInfo&KeyInfoEncryptedKeyData != 0 }
func (f *KeyFrame) InfoVersion() uint8 { return uint8(f.KeyInfo & KeyInfoVersionMask) }

// DecodeKeyFrame parses a raw EAPOL frame. Truncated input or a non key
// packet type yields an error; the caller treats both as noise.
func DecodeKeyFrame(buf []byte) (*KeyFrame, error) {
	if len(buf) < headerLen {
		return nil, ErrShortFrame
	}

	f := &KeyFrame{
		Version:        buf[0],
		Type:           buf[1],
		Length:         binary.BigEndian.Uint16(buf[2:4]),
		DescriptorType: buf[4],
		KeyInfo:        binary.BigEndian.Uint16(buf[5:7]),
		KeyLength:      binary.BigEndian.Uint16(buf[7:9]),
		ReplayCounter:  binary.BigEndian.Uint64(buf[9:17]),
		RSC:            binary.BigEndian.Uint64(buf[65:73]),
		ID:             binary.BigEndian.Uint64(buf[73:81]),
		KeyDataLength:  binary.BigEndian.Uint16(buf[97:99]),
	}
	copy(f.Nonce[:], buf[17:49])
	copy(f.IV[:], buf[49:65])
	copy(f.MIC[:], buf[81:97])

	if f.Type != PacketTypeKey {
		return nil, ErrNotKeyFrame
	}

	if n := int(f.KeyDataLength); len(buf) >= headerLen+n {
		f.KeyData = buf[headerLen : headerLen+n]
	} else {
		f.KeyData = buf[headerLen:]
	}

	return f, nil
}

// Encode serializes the frame, recomputing the body and key data length
// fields from the key data.
func (f *KeyFrame) Encode() []byte {
	f.KeyDataLength = uint16(len(f.KeyData))
	// body length counts everything past the 4 byte EAPOL preamble
	f.Length = uint16(headerLen - 4 + len(f.KeyData))

	buf := make([]byte, headerLen+len(f.KeyData))
	buf[0] = f.Version
	buf[1] = f.Type
	binary.BigEndian.PutUint16(buf[2:4], f.Length)
	buf[4] = f.DescriptorType
	binary.BigEndian.PutUint16(buf[5:7], f.KeyInfo)
	binary.BigEndian.PutUint16(buf[7:9], f.KeyLength)
	binary.BigEndian.PutUint64(buf[9:17], f.ReplayCounter)
	copy(buf[17:49], f.Nonce[:])
	copy(buf[49:65], f.IV[:])
	binary.BigEndian.PutUint64(buf[65:73], f.RSC)
	binary.BigEndian.PutUint64(buf[73:81], f.ID)
	copy(buf[81:97], f.MIC[:])
	binary.BigEndian.PutUint16(buf[97:99], f.KeyDataLength)
	copy(buf[headerLen:], f.KeyData)

	return buf
}

// EncodeZeroMIC serializes the frame with a zeroed MIC field, which is
// the exact input the MIC is computed over.
func (f *KeyFrame) EncodeZeroMIC() []byte {
	buf := f.Encode()
	for i := 81; i < 97; i++ {
		buf[i] = 0
	}
	return buf
}
