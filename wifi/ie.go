package wifi

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func Info(id layers.Dot11InformationElementID, info []byte) *layers.Dot11InformationElement {
	return &layers.Dot11InformationElement{
		ID:     id,
		Length: uint8(len(info) & 0xff),
		Info:   info,
	}
}

// EachIE walks every information element layer of a decoded management
// frame, invoking cb for each one.
func EachIE(pkt gopacket.Packet, cb func(ie *layers.Dot11InformationElement)) {
	for _, layer := range pkt.Layers() {
		if layer.LayerType() == layers.LayerTypeDot11InformationElement {
			if ie, ok := layer.(*layers.Dot11InformationElement); ok {
				cb(ie)
			}
		}
	}
}

// FindIE returns the first information element with the given id, or nil.
func FindIE(pkt gopacket.Packet, id layers.Dot11InformationElementID) (found *layers.Dot11InformationElement) {
	EachIE(pkt, func(ie *layers.Dot11InformationElement) {
		if found == nil && ie.ID == id {
			found = ie
		}
	})
	return found
}

// SSIDOf extracts the SSID element of a beacon or probe response. Hidden
// networks advertise an empty or zeroed SSID, reported here as "".
func SSIDOf(pkt gopacket.Packet) (string, bool) {
	ie := FindIE(pkt, IDSSID)
	if ie == nil {
		return "", false
	}

	for _, b := range ie.Info {
		if b != 0x00 {
			return string(ie.Info), true
		}
	}
	return "", true
}

// ChannelOf returns the channel advertised by the DS parameter set
// element, or 0 when the element is missing.
func ChannelOf(pkt gopacket.Packet) int {
	if ie := FindIE(pkt, IDDSParam); ie != nil && len(ie.Info) >= 1 {
		return int(ie.Info[0])
	}
	return 0
}

// WidthOf returns the channel width in MHz: 40 when the HT operation
// element advertises a secondary channel, 20 otherwise.
func WidthOf(pkt gopacket.Packet) int {
	if ie := FindIE(pkt, IDHTOper); ie != nil && len(ie.Info) >= 2 {
		if offset := ie.Info[1] & 0x03; offset == 1 || offset == 3 {
			return 40
		}
	}
	return 20
}
