package wifi

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreq2Chan(t *testing.T) {
	assert.Equal(t, 1, Freq2Chan(2412))
	assert.Equal(t, 6, Freq2Chan(2437))
	assert.Equal(t, 14, Freq2Chan(2484))
	assert.Equal(t, 36, Freq2Chan(5180))
	assert.Equal(t, 0, Freq2Chan(6000))
}

func TestChan2Freq(t *testing.T) {
	assert.Equal(t, 2412, Chan2Freq(1))
	assert.Equal(t, 2484, Chan2Freq(14))
	assert.Equal(t, 5180, Chan2Freq(36))
	assert.Equal(t, 0, Chan2Freq(200))

	for ch := 1; ch <= 14; ch++ {
		assert.Equal(t, ch, Freq2Chan(Chan2Freq(ch)))
	}
}

func TestSerializeParse(t *testing.T) {
	err, raw := Serialize(
		&layers.Dot11{
			Address1:       testAP,
			Address2:       testSTA,
			Address3:       testAP,
			Type:           layers.Dot11TypeMgmtDeauthentication,
			SequenceNumber: 42,
		},
		&layers.Dot11MgmtDeauthentication{Reason: layers.Dot11ReasonDeauthStLeaving},
	)
	require.NoError(t, err)

	pkt := gopacket.NewPacket(raw, layers.LayerTypeDot11, gopacket.NoCopy)
	ok, radio, dot11 := Parse(pkt)
	require.True(t, ok)
	assert.Nil(t, radio)
	assert.Equal(t, testAP.String(), dot11.Address1.String())
	assert.Equal(t, testSTA.String(), dot11.Address2.String())
	assert.Equal(t, uint16(42), dot11.SequenceNumber)
	assert.False(t, IsBroadcast(dot11))
}

// The Dot11 decoder always strips the trailing 4 bytes as the FCS, so
// serialized frames must carry one or the last body field gets eaten on
// the way back.
func TestSerializeAppendsFCS(t *testing.T) {
	err, raw := Serialize(
		&layers.Dot11{
			Address1: testSTA,
			Address2: testAP,
			Address3: testAP,
			Type:     layers.Dot11TypeMgmtAuthentication,
		},
		&layers.Dot11MgmtAuthentication{
			Algorithm: layers.Dot11AlgorithmOpen,
			Sequence:  2,
			Status:    layers.Dot11StatusSuccess,
		},
	)
	require.NoError(t, err)

	require.True(t, len(raw) > 4)
	fcs := binary.LittleEndian.Uint32(raw[len(raw)-4:])
	assert.Equal(t, crc32.ChecksumIEEE(raw[:len(raw)-4]), fcs)

	pkt := gopacket.NewPacket(raw, layers.LayerTypeDot11, gopacket.NoCopy)
	ok, _, dot11 := Parse(pkt)
	require.True(t, ok)
	assert.True(t, dot11.ChecksumValid())

	authLayer := pkt.Layer(layers.LayerTypeDot11MgmtAuthentication)
	require.NotNil(t, authLayer)
	auth := authLayer.(*layers.Dot11MgmtAuthentication)
	assert.Equal(t, layers.Dot11AlgorithmOpen, auth.Algorithm)
	assert.Equal(t, uint16(2), auth.Sequence)
	assert.Equal(t, layers.Dot11StatusSuccess, auth.Status)
}

func TestParseGarbage(t *testing.T) {
	pkt := gopacket.NewPacket([]byte{0x01, 0x02}, layers.LayerTypeDot11, gopacket.NoCopy)
	ok, _, _ := Parse(pkt)
	assert.False(t, ok)
}

func TestSSIDOf(t *testing.T) {
	ssid, found := SSIDOf(testBeacon(t, CapabilityESS))
	assert.True(t, found)
	assert.Equal(t, "test-net", ssid)
}

func TestSSIDOfHidden(t *testing.T) {
	err, raw := Serialize(
		&layers.Dot11{
			Address1: BroadcastAddr,
			Address2: testAP,
			Address3: testAP,
			Type:     layers.Dot11TypeMgmtBeacon,
		},
		&layers.Dot11MgmtBeacon{Interval: 100, Flags: CapabilityESS},
		Info(IDSSID, []byte{0x00, 0x00, 0x00, 0x00}),
	)
	require.NoError(t, err)

	pkt := gopacket.NewPacket(raw, layers.LayerTypeDot11, gopacket.NoCopy)
	ssid, found := SSIDOf(pkt)
	assert.True(t, found)
	assert.Equal(t, "", ssid)
}

func TestChannelOf(t *testing.T) {
	assert.Equal(t, 6, ChannelOf(testBeacon(t, CapabilityESS)))
}

func TestWidthOf(t *testing.T) {
	assert.Equal(t, 20, WidthOf(testBeacon(t, CapabilityESS)))

	ht40 := Info(IDHTOper, []byte{6, 0x05, 0x00, 0x00, 0x00})
	assert.Equal(t, 40, WidthOf(testBeacon(t, CapabilityESS, ht40)))

	ht20 := Info(IDHTOper, []byte{6, 0x00, 0x00, 0x00, 0x00})
	assert.Equal(t, 20, WidthOf(testBeacon(t, CapabilityESS, ht20)))
}

func TestEAPOLFrame(t *testing.T) {
	payload := []byte{0x01, 0x03, 0x00, 0x05, 0xaa, 0xbb, 0xcc, 0xdd, 0xee}
	err, raw := EAPOLFrame(testSTA, testAP, 7, payload)
	require.NoError(t, err)

	pkt := gopacket.NewPacket(raw, layers.LayerTypeDot11, gopacket.NoCopy)
	ok, _, dot11 := Parse(pkt)
	require.True(t, ok)
	assert.Equal(t, layers.Dot11TypeData, dot11.Type)
	assert.True(t, dot11.Flags.ToDS())
}
