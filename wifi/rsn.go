package wifi

import (
	"errors"
	"fmt"
)

var ErrShortRSN = errors.New("RSN element too short")

const rsnVersion = 1

type CipherSuite uint8

const (
	CipherWEP40  CipherSuite = 1
	CipherTKIP   CipherSuite = 2
	CipherCCMP   CipherSuite = 4
	CipherWEP104 CipherSuite = 5
	CipherGCMP   CipherSuite = 8
)

func (c CipherSuite) String() string {
	switch c {
	case CipherWEP40:
		return "WEP-40"
	case CipherTKIP:
		return "TKIP"
	case CipherCCMP:
		return "CCMP"
	case CipherWEP104:
		return "WEP-104"
	case CipherGCMP:
		return "GCMP"
	}
	return fmt.Sprintf("CIPHER(%d)", uint8(c))
}

type AKMSuite uint8

const (
	AKM8021X AKMSuite = 1
	AKMPSK   AKMSuite = 2
	AKMSAE   AKMSuite = 8
)

func (a AKMSuite) String() string {
	switch a {
	case AKM8021X:
		return "802.1X"
	case AKMPSK:
		return "PSK"
	case AKMSAE:
		return "SAE"
	}
	return fmt.Sprintf("AKM(%d)", uint8(a))
}

// RSNInfo is the parsed form of an RSN information element.
type RSNInfo struct {
	Version         uint16
	GroupCipher     CipherSuite
	PairwiseCiphers []CipherSuite
	AKMSuites       []AKMSuite
	Capabilities    uint16
}

func (r *RSNInfo) HasAKM(akm AKMSuite) bool {
	for _, a := range r.AKMSuites {
		if a == akm {
			return true
		}
	}
	return false
}

func (r *RSNInfo) HasPairwise(cipher CipherSuite) bool {
	for _, c := range r.PairwiseCiphers {
		if c == cipher {
			return true
		}
	}
	return false
}

// ParseRSN parses the body of an RSN information element (tag 48). Suite
// counts are little endian, suite selectors are OUI plus type. Trailing
// fields may legally be absent, so parsing stops at the first truncated
// section instead of failing.
func ParseRSN(data []byte) (*RSNInfo, error) {
	if len(data) < 2 {
		return nil, ErrShortRSN
	}

	rsn := &RSNInfo{
		Version: uint16(data[0]) | uint16(data[1])<<8,
	}
	offset := 2

	if offset+4 > len(data) {
		return rsn, nil
	}
	rsn.GroupCipher = CipherSuite(data[offset+3])
	offset += 4

	if offset+2 > len(data) {
		return rsn, nil
	}
	count := int(data[offset]) | int(data[offset+1])<<8
	offset += 2
	for i := 0; i < count && offset+4 <= len(data); i++ {
		rsn.PairwiseCiphers = append(rsn.PairwiseCiphers, CipherSuite(data[offset+3]))
		offset += 4
	}

	if offset+2 > len(data) {
		return rsn, nil
	}
	count = int(data[offset]) | int(data[offset+1])<<8
	offset += 2
	for i := 0; i < count && offset+4 <= len(data); i++ {
		rsn.AKMSuites = append(rsn.AKMSuites, AKMSuite(data[offset+3]))
		offset += 4
	}

	if offset+2 <= len(data) {
		rsn.Capabilities = uint16(data[offset]) | uint16(data[offset+1])<<8
	}

	return rsn, nil
}

// RSNElement builds the full RSN information element (tag and length
// included) advertising CCMP group and pairwise ciphers with PSK key
// management, as carried in handshake message 2 key data.
func RSNElement() []byte {
	body := []byte{
		rsnVersion, 0x00,
	}
	body = append(body, rsnSuiteOUI...)
	body = append(body, byte(CipherCCMP))
	body = append(body, 0x01, 0x00)
	body = append(body, rsnSuiteOUI...)
	body = append(body, byte(CipherCCMP))
	body = append(body, 0x01, 0x00)
	body = append(body, rsnSuiteOUI...)
	body = append(body, byte(AKMPSK))
	body = append(body, 0x00, 0x00)

	elem := make([]byte, 0, len(body)+2)
	elem = append(elem, byte(IDRSN), byte(len(body)))
	return append(elem, body...)
}
