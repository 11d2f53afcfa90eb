package api

import (
	"net/http"
)

func (api *API) ShowStatus(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, api.Station.Status())
}
