package wifi

import (
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// capability bits carried by beacons and (re)association frames
	CapabilityESS     = 0x0001
	CapabilityIBSS    = 0x0002
	CapabilityPrivacy = 0x0010
)

const (
	IDSSID    layers.Dot11InformationElementID = 0
	IDRates   layers.Dot11InformationElementID = 1
	IDDSParam layers.Dot11InformationElementID = 3
	IDRSN     layers.Dot11InformationElementID = 48
	IDHTOper  layers.Dot11InformationElementID = 61
	IDVendor  layers.Dot11InformationElementID = 221
)

var SerializationOptions = gopacket.SerializeOptions{
	FixLengths:       true,
	ComputeChecksums: true,
}

var (
	BroadcastAddr = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	// 1, 2, 5.5 and 11 Mbit, all flagged as basic rates
	BasicRates = []byte{0x82, 0x84, 0x8b, 0x96}

	// Microsoft OUI plus the WPA subtype, as carried by pre-RSN beacons
	msWPAVendorOUI = []byte{0x00, 0x50, 0xf2, 0x01}
	// suite selector OUI shared by every standard RSN cipher and AKM
	rsnSuiteOUI = []byte{0x00, 0x0f, 0xac}
)
