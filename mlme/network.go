package mlme

import (
	"net"

	"github.com/wlanstack/wlansta/wifi"
)

// Network describes an access point discovered during a scan. Entries
// are immutable once added to the scan result set and are discarded
// when a new scan starts.
type Network struct {
	SSID      string
	BSSID     net.HardwareAddr
	Channel   int
	Frequency int
	Width     int
	RSSI      int8
	Security  wifi.Security
	RSN       *wifi.RSNInfo
}
