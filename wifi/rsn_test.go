package wifi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rsnBody(akms ...byte) []byte {
	body := []byte{
		0x01, 0x00, // version
		0x00, 0x0f, 0xac, 0x04, // group CCMP
		0x01, 0x00, // pairwise count
		0x00, 0x0f, 0xac, 0x04, // pairwise CCMP
		byte(len(akms)), 0x00, // akm count
	}
	for _, akm := range akms {
		body = append(body, 0x00, 0x0f, 0xac, akm)
	}
	return append(body, 0x0c, 0x00) // capabilities
}

func TestParseRSN(t *testing.T) {
	rsn, err := ParseRSN(rsnBody(byte(AKMPSK)))
	require.NoError(t, err)

	assert.Equal(t, uint16(1), rsn.Version)
	assert.Equal(t, CipherCCMP, rsn.GroupCipher)
	assert.Equal(t, []CipherSuite{CipherCCMP}, rsn.PairwiseCiphers)
	assert.Equal(t, []AKMSuite{AKMPSK}, rsn.AKMSuites)
	assert.Equal(t, uint16(0x000c), rsn.Capabilities)
	assert.True(t, rsn.HasAKM(AKMPSK))
	assert.True(t, rsn.HasPairwise(CipherCCMP))
	assert.False(t, rsn.HasAKM(AKMSAE))
}

func TestParseRSNMultipleAKMs(t *testing.T) {
	rsn, err := ParseRSN(rsnBody(byte(AKMPSK), byte(AKMSAE)))
	require.NoError(t, err)
	assert.True(t, rsn.HasAKM(AKMPSK))
	assert.True(t, rsn.HasAKM(AKMSAE))
}

func TestParseRSNTruncated(t *testing.T) {
	_, err := ParseRSN([]byte{0x01})
	assert.Equal(t, ErrShortRSN, err)

	// version only is legal
	rsn, err := ParseRSN([]byte{0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint16(1), rsn.Version)
	assert.Empty(t, rsn.PairwiseCiphers)

	// stops cleanly at a truncated suite list
	rsn, err = ParseRSN(rsnBody(byte(AKMPSK))[:12])
	require.NoError(t, err)
	assert.Equal(t, CipherCCMP, rsn.GroupCipher)
	assert.Empty(t, rsn.AKMSuites)
}

func TestRSNElement(t *testing.T) {
	elem := RSNElement()
	require.True(t, len(elem) > 2)
	assert.Equal(t, byte(IDRSN), elem[0])
	assert.Equal(t, int(elem[1]), len(elem)-2)

	rsn, err := ParseRSN(elem[2:])
	require.NoError(t, err)
	assert.Equal(t, CipherCCMP, rsn.GroupCipher)
	assert.True(t, rsn.HasPairwise(CipherCCMP))
	assert.True(t, rsn.HasAKM(AKMPSK))
}
