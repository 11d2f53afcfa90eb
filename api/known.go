package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jinzhu/gorm"

	"github.com/wlanstack/wlansta/models"
)

var ErrEmptySSID = errors.New("ssid can not be empty")

func (api *API) ListKnownNetworks(w http.ResponseWriter, r *http.Request) {
	networks, err := models.KnownNetworks()
	if err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}
	// never leak stored passphrases
	for i := range networks {
		networks[i].Passphrase = ""
	}
	JSON(w, http.StatusOK, networks)
}

func (api *API) SaveKnownNetwork(w http.ResponseWriter, r *http.Request) {
	var network models.KnownNetwork
	if err := json.NewDecoder(r.Body).Decode(&network); err != nil {
		ERROR(w, http.StatusUnprocessableEntity, err)
		return
	}
	if network.SSID == "" {
		ERROR(w, http.StatusUnprocessableEntity, ErrEmptySSID)
		return
	}

	if err := models.SaveKnownNetwork(&network); err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}
	network.Passphrase = ""
	JSON(w, http.StatusOK, network)
}

func (api *API) DeleteKnownNetwork(w http.ResponseWriter, r *http.Request) {
	ssid := chi.URLParam(r, "ssid")
	if err := models.DeleteKnownNetwork(ssid); err != nil {
		if err == gorm.ErrRecordNotFound {
			ERROR(w, http.StatusNotFound, err)
		} else {
			ERROR(w, http.StatusInternalServerError, err)
		}
		return
	}
	JSON(w, http.StatusOK, nil)
}
