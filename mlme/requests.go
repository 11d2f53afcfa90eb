package mlme

import (
	"net"

	"github.com/google/gopacket/layers"
)

// Request is an operation asked of the MLME by its owner. Each request
// either returns the management frame bytes to transmit or a typed
// error, leaving state untouched on failure.
type Request interface {
	request()
}

// Scan clears previous results and starts accumulating networks. The
// owner iterates the channel list itself, re-probing per channel.
type Scan struct {
	SSID     string
	Channels []int
}

// ScanStop ends an in-progress scan.
type ScanStop struct{}

// Authenticate starts open-system authentication with an access point.
type Authenticate struct {
	BSSID     net.HardwareAddr
	Algorithm layers.Dot11Algorithm
}

// Associate requests association, valid only once authenticated.
type Associate struct {
	BSSID net.HardwareAddr
	SSID  string
}

// Deauthenticate tears the connection down to idle.
type Deauthenticate struct {
	BSSID  net.HardwareAddr
	Reason layers.Dot11Reason
}

// Disassociate drops an association but keeps the authentication.
type Disassociate struct {
	BSSID  net.HardwareAddr
	Reason layers.Dot11Reason
}

func (Scan) request()           {}
func (ScanStop) request()       {}
func (Authenticate) request()   {}
func (Associate) request()      {}
func (Deauthenticate) request() {}
func (Disassociate) request()   {}
