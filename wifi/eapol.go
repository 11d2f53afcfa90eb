package wifi

import (
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// LLC/SNAP header carrying ethertype 0x888e, prepended to EAPOL
// payloads inside 802.11 data frames.
var llcSNAPEAPOL = []byte{0xaa, 0xaa, 0x03, 0x00, 0x00, 0x00, 0x88, 0x8e}

// EAPOLFrame wraps a raw EAPOL payload into an 802.11 data frame headed
// to the distribution system.
func EAPOLFrame(src, bssid net.HardwareAddr, seq uint16, eapol []byte) (error, []byte) {
	payload := make([]byte, 0, len(llcSNAPEAPOL)+len(eapol))
	payload = append(payload, llcSNAPEAPOL...)
	payload = append(payload, eapol...)

	return Serialize(
		&layers.Dot11{
			Address1:       bssid,
			Address2:       src,
			Address3:       bssid,
			Type:           layers.Dot11TypeData,
			Flags:          layers.Dot11FlagsToDS,
			SequenceNumber: seq,
		},
		gopacket.Payload(payload),
	)
}

// EAPOLPayload extracts the raw EAPOL frame from a captured packet, or
// nil when the packet carries none.
func EAPOLPayload(pkt gopacket.Packet) []byte {
	l := pkt.Layer(layers.LayerTypeEAPOL)
	if l == nil {
		return nil
	}
	raw := make([]byte, 0, len(l.LayerContents())+len(l.LayerPayload()))
	raw = append(raw, l.LayerContents()...)
	return append(raw, l.LayerPayload()...)
}
