package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

var ErrNoSSID = errors.New("no ssid specified")

type ConnectRequest struct {
	SSID string `json:"ssid"`
}

// Connect joins a network by SSID, blocking until the connection is up
// or the attempt fails. Credentials for protected networks come from
// the station configuration.
func (api *API) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ERROR(w, http.StatusUnprocessableEntity, err)
		return
	}
	if req.SSID == "" {
		ERROR(w, http.StatusUnprocessableEntity, ErrNoSSID)
		return
	}

	if err := api.Station.Connect(req.SSID); err != nil {
		ERROR(w, http.StatusConflict, err)
		return
	}
	JSON(w, http.StatusOK, api.Station.Status())
}

func (api *API) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := api.Station.Disconnect(); err != nil {
		ERROR(w, http.StatusConflict, err)
		return
	}
	JSON(w, http.StatusOK, api.Station.Status())
}
