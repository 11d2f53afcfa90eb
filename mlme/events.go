package mlme

import (
	"github.com/google/gopacket/layers"
)

// Event is a notification produced by the MLME for its owner. Events
// accumulate in an internal queue and are drained with NextEvent.
type Event interface {
	event()
}

type ScanStarted struct{}

type ScanCompleted struct{}

type NetworkFound struct {
	Network Network
}

type AuthCompleted struct {
	Status layers.Dot11Status
}

type AssocCompleted struct {
	Status        layers.Dot11Status
	AssociationID uint16
}

type Deauthenticated struct {
	Reason layers.Dot11Reason
}

type Disassociated struct {
	Reason layers.Dot11Reason
}

type ConnectionLost struct{}

type DataReceived struct {
	Payload []byte
}

func (ScanStarted) event()     {}
func (ScanCompleted) event()   {}
func (NetworkFound) event()    {}
func (AuthCompleted) event()   {}
func (AssocCompleted) event()  {}
func (Deauthenticated) event() {}
func (Disassociated) event()   {}
func (ConnectionLost) event()  {}
func (DataReceived) event()    {}
