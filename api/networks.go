package api

import (
	"encoding/json"
	"net/http"

	"github.com/wlanstack/wlansta/mlme"
)

type networkRecord struct {
	SSID     string `json:"ssid"`
	BSSID    string `json:"bssid"`
	Channel  int    `json:"channel"`
	Width    int    `json:"width"`
	RSSI     int    `json:"rssi"`
	Security string `json:"security"`
}

func asRecords(networks []mlme.Network) []networkRecord {
	records := make([]networkRecord, 0, len(networks))
	for _, n := range networks {
		records = append(records, networkRecord{
			SSID:     n.SSID,
			BSSID:    n.BSSID.String(),
			Channel:  n.Channel,
			Width:    n.Width,
			RSSI:     int(n.RSSI),
			Security: n.Security.String(),
		})
	}
	return records
}

// ListNetworks returns the results of the most recent scan.
func (api *API) ListNetworks(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, asRecords(api.Station.Results()))
}

type ScanRequest struct {
	SSID string `json:"ssid"`
}

// StartScan runs a sweep over the configured channels and returns what
// was found. The request blocks for the duration of the sweep.
func (api *API) StartScan(w http.ResponseWriter, r *http.Request) {
	var scan ScanRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&scan); err != nil {
			ERROR(w, http.StatusUnprocessableEntity, err)
			return
		}
	}

	networks, err := api.Station.Scan(scan.SSID)
	if err != nil {
		ERROR(w, http.StatusConflict, err)
		return
	}
	JSON(w, http.StatusOK, asRecords(networks))
}
