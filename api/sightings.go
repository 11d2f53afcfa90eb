package api

import (
	"net/http"

	"github.com/evilsocket/islazy/log"

	"github.com/wlanstack/wlansta/models"
)

func (api *API) ListSightings(w http.ResponseWriter, r *http.Request) {
	page, err := pageNum(r)
	if err != nil {
		ERROR(w, http.StatusUnprocessableEntity, err)
		return
	}

	sightings, total, pages := models.GetPagedSightings(page)

	JSON(w, http.StatusOK, map[string]interface{}{
		"records":   total,
		"pages":     pages,
		"sightings": sightings,
	})
}

func (api *API) SightingsBySecurity(w http.ResponseWriter, r *http.Request) {
	results, err := models.GetSightingsBySecurity()
	if err != nil {
		log.Warning("error getting sightings by security: %v", err)
		ERROR(w, http.StatusInternalServerError, err)
		return
	}
	JSON(w, http.StatusOK, results)
}
