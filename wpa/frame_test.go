package wpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFrameRoundTrip(t *testing.T) {
	frame := &KeyFrame{
		Version:        ProtocolVersion,
		Type:           PacketTypeKey,
		DescriptorType: DescriptorTypeRSN,
		KeyInfo:        2 | KeyInfoPairwise | KeyInfoAck,
		KeyLength:      16,
		ReplayCounter:  7,
		RSC:            0x0102030405060708,
		ID:             0x1122334455667788,
		KeyData:        []byte{0xde, 0xad, 0xbe, 0xef},
	}
	for i := range frame.Nonce {
		frame.Nonce[i] = byte(i)
	}
	for i := range frame.MIC {
		frame.MIC[i] = byte(0xf0 + i)
	}

	raw := frame.Encode()
	require.Len(t, raw, 99+4)

	decoded, err := DecodeKeyFrame(raw)
	require.NoError(t, err)

	assert.Equal(t, frame.Version, decoded.Version)
	assert.Equal(t, frame.DescriptorType, decoded.DescriptorType)
	assert.Equal(t, frame.KeyInfo, decoded.KeyInfo)
	assert.Equal(t, frame.KeyLength, decoded.KeyLength)
	assert.Equal(t, frame.ReplayCounter, decoded.ReplayCounter)
	assert.Equal(t, frame.Nonce, decoded.Nonce)
	assert.Equal(t, frame.RSC, decoded.RSC)
	assert.Equal(t, frame.ID, decoded.ID)
	assert.Equal(t, frame.MIC, decoded.MIC)
	assert.Equal(t, frame.KeyData, decoded.KeyData)
	// body length excludes the 4 byte EAPOL preamble
	assert.Equal(t, uint16(99-4+4), decoded.Length)
	assert.Equal(t, uint16(4), decoded.KeyDataLength)
}

func TestDecodeKeyFrameErrors(t *testing.T) {
	_, err := DecodeKeyFrame(make([]byte, 50))
	assert.Equal(t, ErrShortFrame, err)

	raw := (&KeyFrame{Version: ProtocolVersion, Type: 0x00}).Encode()
	_, err = DecodeKeyFrame(raw)
	assert.Equal(t, ErrNotKeyFrame, err)
}

func TestEncodeZeroMIC(t *testing.T) {
	frame := &KeyFrame{
		Version:        ProtocolVersion,
		Type:           PacketTypeKey,
		DescriptorType: DescriptorTypeRSN,
		KeyData:        []byte{0x01, 0x02},
	}
	for i := range frame.MIC {
		frame.MIC[i] = 0xff
	}

	zeroed := frame.EncodeZeroMIC()
	for i := 81; i < 97; i++ {
		assert.Equal(t, byte(0), zeroed[i])
	}
	// everything else survives
	raw := frame.Encode()
	assert.Equal(t, raw[:81], zeroed[:81])
	assert.Equal(t, raw[97:], zeroed[97:])
}

func TestFrameFlags(t *testing.T) {
	frame := &KeyFrame{KeyInfo: 2 | KeyInfoPairwise | KeyInfoAck | KeyInfoMIC | KeyInfoSecure | KeyInfoEncryptedKeyData}
	assert.True(t, frame.HasAck())
	assert.True(t, frame.HasMIC())
	assert.True(t, frame.IsSecure())
	assert.True(t, frame.IsPairwise())
	assert.True(t, frame.IsEncrypted())
	assert.Equal(t, uint8(2), frame.InfoVersion())

	frame = &KeyFrame{KeyInfo: 1}
	assert.False(t, frame.HasAck())
	assert.Equal(t, uint8(1), frame.InfoVersion())
}
