package wifi

import (
	"bytes"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Security is the coarse protection class of a discovered network.
type Security int

const (
	SecurityOpen Security = iota
	SecurityWEP
	SecurityWPA
	SecurityWPA2
	SecurityWPA3
)

func (s Security) String() string {
	switch s {
	case SecurityWEP:
		return "WEP"
	case SecurityWPA:
		return "WPA-PSK"
	case SecurityWPA2:
		return "WPA2-PSK"
	case SecurityWPA3:
		return "WPA3-SAE"
	}
	return "OPEN"
}

// Classify derives the security class of a network from its beacon or
// probe response: capability flags plus the RSN and vendor elements.
// SAE wins over a co-present PSK suite, RSN wins over the legacy WPA
// vendor element, and the privacy bit alone means WEP.
func Classify(pkt gopacket.Packet, capabilities uint16) (Security, *RSNInfo) {
	var rsn *RSNInfo

	if ie := FindIE(pkt, IDRSN); ie != nil {
		rsn, _ = ParseRSN(ie.Info)
	}

	if rsn != nil {
		if rsn.HasAKM(AKMSAE) {
			return SecurityWPA3, rsn
		}
		if rsn.HasAKM(AKMPSK) {
			return SecurityWPA2, rsn
		}
	}

	wpaVendor := false
	EachIE(pkt, func(ie *layers.Dot11InformationElement) {
		if ie.ID == IDVendor && bytes.Equal(ie.OUI, msWPAVendorOUI) {
			wpaVendor = true
		}
	})
	if wpaVendor {
		return SecurityWPA, rsn
	}

	if capabilities&CapabilityPrivacy != 0 {
		return SecurityWEP, rsn
	}

	return SecurityOpen, rsn
}
