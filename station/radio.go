package station

import (
	"github.com/google/gopacket"
)

// PacketCallback receives every frame captured by a radio.
type PacketCallback func(pkt gopacket.Packet)

// Radio is the boundary to the physical driver: it transmits raw frame
// bytes, tunes channels and delivers received frames to a callback.
type Radio interface {
	OnPacket(cb PacketCallback)
	Transmit(buf []byte) error
	SetChannel(channel int) error
	Start() error
	Close()
}
