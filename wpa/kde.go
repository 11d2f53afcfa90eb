package wpa

import (
	"bytes"
)

// Key data encapsulations: the decrypted key data of message 3 is a
// sequence of IE-shaped entries, with KDEs carried under the vendor tag
// with the 00:0f:ac OUI.
const (
	kdeTag     = 0xdd
	kdeTypeGTK = 1
)

var kdeOUI = []byte{0x00, 0x0f, 0xac}

// GTK is the group temporal key delivered by the authenticator.
type GTK struct {
	Key   []byte
	Index uint8
	Tx    bool
}

// ParseGTK scans decrypted key data for a GTK KDE and returns the group
// key it carries, or nil if none is present.
func ParseGTK(keyData []byte) *GTK {
	offset := 0
	for offset+2 <= len(keyData) {
		tag := keyData[offset]
		length := int(keyData[offset+1])
		offset += 2

		if offset+length > len(keyData) {
			break
		}
		data := keyData[offset : offset+length]
		offset += length

		if tag != kdeTag || length < 6 {
			continue
		}
		if !bytes.Equal(data[:3], kdeOUI) || data[3] != kdeTypeGTK {
			continue
		}

		// two bytes of flags (key id, tx) and a reserved byte precede
		// the key itself
		return &GTK{
			Key:   append([]byte(nil), data[6:]...),
			Index: data[4] & 0x03,
			Tx:    data[4]&0x04 != 0,
		}
	}
	return nil
}

// EncodeGTK builds the GTK KDE, used by the authenticator side and by
// handshake tests.
func EncodeGTK(gtk *GTK) []byte {
	flags := gtk.Index & 0x03
	if gtk.Tx {
		flags |= 0x04
	}

	data := make([]byte, 0, 8+len(gtk.Key))
	data = append(data, kdeTag, byte(6+len(gtk.Key)))
	data = append(data, kdeOUI...)
	data = append(data, kdeTypeGTK, flags, 0x00)
	return append(data, gtk.Key...)
}
