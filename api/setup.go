package api

import (
	"net/http"

	"github.com/evilsocket/islazy/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/wlanstack/wlansta/station"
)

const Version = "1.0.0"

type API struct {
	Router  *chi.Mux
	Station *station.Station
}

func Setup(sta *station.Station) (err error, api *API) {
	api = &API{
		Router:  chi.NewRouter(),
		Station: sta,
	}

	api.Router.Use(CORS)
	api.Router.Use(middleware.DefaultCompress)

	api.Router.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// POST /api/v1/auth
			r.Post("/auth", api.Authenticate)
			// GET /api/v1/status
			r.Get("/status", api.ShowStatus)
			// GET /api/v1/networks
			r.Get("/networks", api.ListNetworks)
			r.Route("/sightings", func(r chi.Router) {
				// GET /api/v1/sightings/
				r.Get("/", api.ListSightings)
				// GET /api/v1/sightings/page/<p>
				r.Get("/page/{p:[0-9]+}", api.ListSightings)
				// GET /api/v1/sightings/by_security
				r.Get("/by_security", api.SightingsBySecurity)
			})

			r.Group(func(r chi.Router) {
				r.Use(api.Auth)

				// POST /api/v1/scan
				r.Post("/scan", api.StartScan)
				// POST /api/v1/connect
				r.Post("/connect", api.Connect)
				// POST /api/v1/disconnect
				r.Post("/disconnect", api.Disconnect)
				r.Route("/known", func(r chi.Router) {
					// GET /api/v1/known/
					r.Get("/", api.ListKnownNetworks)
					// POST /api/v1/known/
					r.Post("/", api.SaveKnownNetwork)
					// DELETE /api/v1/known/<ssid>
					r.Delete("/{ssid}", api.DeleteKnownNetwork)
				})
			})
		})
	})

	return
}

func (api *API) Run(addr string) {
	log.Info("wlansta api starting on %s ...", addr)
	log.Fatal("%v", http.ListenAndServe(addr, api.Router))
}
