package main

import (
	"flag"
	"fmt"

	"github.com/evilsocket/islazy/log"
	"github.com/go-chi/docgen"

	"github.com/wlanstack/wlansta/api"
	"github.com/wlanstack/wlansta/mlme"
	"github.com/wlanstack/wlansta/models"
	"github.com/wlanstack/wlansta/station"
)

func recordSighting(n mlme.Network) {
	if !models.Ready() {
		return
	}
	sighting := models.Sighting{
		SSID:     n.SSID,
		BSSID:    n.BSSID.String(),
		Channel:  n.Channel,
		RSSI:     int(n.RSSI),
		Security: n.Security.String(),
	}
	if err := models.Create(&sighting).Error; err != nil {
		log.Debug("error recording sighting of %s: %v", n.BSSID, err)
	}
}

func main() {
	var err error

	flag.Parse()

	if ver {
		fmt.Println(api.Version)
		return
	}

	setupCore()

	if err := log.Open(); err != nil {
		panic(err)
	}
	defer log.Close()

	log.Info("wlanstad v%s starting ...", api.Version)

	config, err := station.LoadConfig(configPath)
	if err != nil {
		log.Fatal("%v", err)
	}

	setupChannels(config)
	setupDB()
	setupStation(config)

	if err, server = api.Setup(sta); err != nil {
		log.Fatal("%v", err)
	}

	if routes {
		fmt.Println(docgen.MarkdownRoutesDoc(server.Router, docgen.MarkdownOpts{
			ProjectPath: "github.com/wlanstack/wlansta",
			Intro:       "wlanstad REST API.",
		}))
		return
	}

	server.Run(address)
}
