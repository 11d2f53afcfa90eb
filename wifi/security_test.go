package wifi

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAP  = net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	testSTA = net.HardwareAddr{0xca, 0xfe, 0xba, 0xbe, 0x00, 0x02}
)

func testBeacon(t *testing.T, caps uint16, extra ...gopacket.SerializableLayer) gopacket.Packet {
	beaconLayers := []gopacket.SerializableLayer{
		&layers.Dot11{
			Address1: BroadcastAddr,
			Address2: testAP,
			Address3: testAP,
			Type:     layers.Dot11TypeMgmtBeacon,
		},
		&layers.Dot11MgmtBeacon{
			Interval: 100,
			Flags:    caps,
		},
		Info(IDSSID, []byte("test-net")),
		Info(IDRates, BasicRates),
		Info(IDDSParam, []byte{6}),
	}
	beaconLayers = append(beaconLayers, extra...)

	err, raw := Serialize(beaconLayers...)
	require.NoError(t, err)
	return gopacket.NewPacket(raw, layers.LayerTypeDot11, gopacket.NoCopy)
}

func TestClassifyOpen(t *testing.T) {
	security, rsn := Classify(testBeacon(t, CapabilityESS), CapabilityESS)
	assert.Equal(t, SecurityOpen, security)
	assert.Nil(t, rsn)
	assert.Equal(t, "OPEN", security.String())
}

func TestClassifyWEP(t *testing.T) {
	caps := uint16(CapabilityESS | CapabilityPrivacy)
	security, _ := Classify(testBeacon(t, caps), caps)
	assert.Equal(t, SecurityWEP, security)
}

func TestClassifyWPA(t *testing.T) {
	caps := uint16(CapabilityESS | CapabilityPrivacy)
	vendor := Info(IDVendor, []byte{
		0x00, 0x50, 0xf2, 0x01, // Microsoft WPA
		0x01, 0x00,
		0x00, 0x50, 0xf2, 0x02, // group TKIP
	})
	security, _ := Classify(testBeacon(t, caps, vendor), caps)
	assert.Equal(t, SecurityWPA, security)
}

func TestClassifyWPA2(t *testing.T) {
	caps := uint16(CapabilityESS | CapabilityPrivacy)
	security, rsn := Classify(testBeacon(t, caps, Info(IDRSN, rsnBody(byte(AKMPSK)))), caps)
	assert.Equal(t, SecurityWPA2, security)
	require.NotNil(t, rsn)
	assert.True(t, rsn.HasAKM(AKMPSK))
	assert.Equal(t, "WPA2-PSK", security.String())
}

func TestClassifyWPA3(t *testing.T) {
	caps := uint16(CapabilityESS | CapabilityPrivacy)
	security, _ := Classify(testBeacon(t, caps, Info(IDRSN, rsnBody(byte(AKMSAE)))), caps)
	assert.Equal(t, SecurityWPA3, security)
}

// a transition mode network advertising both suites counts as WPA3
func TestClassifySAEWinsOverPSK(t *testing.T) {
	caps := uint16(CapabilityESS | CapabilityPrivacy)
	element := Info(IDRSN, rsnBody(byte(AKMPSK), byte(AKMSAE)))
	security, _ := Classify(testBeacon(t, caps, element), caps)
	assert.Equal(t, SecurityWPA3, security)
}

// RSN wins over a co-present legacy vendor element
func TestClassifyRSNWinsOverVendor(t *testing.T) {
	caps := uint16(CapabilityESS | CapabilityPrivacy)
	vendor := Info(IDVendor, []byte{0x00, 0x50, 0xf2, 0x01, 0x01, 0x00})
	security, _ := Classify(testBeacon(t, caps, Info(IDRSN, rsnBody(byte(AKMPSK))), vendor), caps)
	assert.Equal(t, SecurityWPA2, security)
}
