package wifi

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Serialize builds the raw frame and appends the FCS: the gopacket
// Dot11 decoder always consumes the trailing 4 bytes as the checksum,
// so frames without one would lose the tail of their last body field
// when parsed back.
func Serialize(layers ...gopacket.SerializableLayer) (error, []byte) {
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, SerializationOptions, layers...); err != nil {
		return err, nil
	}

	frame := buf.Bytes()
	fcs := make([]byte, 4)
	binary.LittleEndian.PutUint32(fcs, crc32.ChecksumIEEE(frame))
	return nil, append(frame, fcs...)
}

// Parse extracts the RadioTap and Dot11 layers from a captured packet,
// tolerating captures without a RadioTap header.
func Parse(packet gopacket.Packet) (ok bool, radio *layers.RadioTap, dot11 *layers.Dot11) {
	if radioLayer := packet.Layer(layers.LayerTypeRadioTap); radioLayer != nil {
		radio, _ = radioLayer.(*layers.RadioTap)
	}

	dot11Layer := packet.Layer(layers.LayerTypeDot11)
	if dot11Layer == nil {
		return false, radio, nil
	}

	dot11, ok = dot11Layer.(*layers.Dot11)
	return ok, radio, dot11
}

func IsBroadcast(dot11 *layers.Dot11) bool {
	return bytes.Equal(dot11.Address1, BroadcastAddr)
}

func Freq2Chan(freq int) int {
	if freq <= 2472 {
		return ((freq - 2412) / 5) + 1
	} else if freq == 2484 {
		return 14
	} else if freq >= 5035 && freq <= 5865 {
		return ((freq - 5035) / 5) + 7
	}
	return 0
}

func Chan2Freq(channel int) int {
	if channel <= 13 {
		return ((channel - 1) * 5) + 2412
	} else if channel == 14 {
		return 2484
	} else if channel <= 173 {
		return ((channel - 7) * 5) + 5035
	}

	return 0
}
