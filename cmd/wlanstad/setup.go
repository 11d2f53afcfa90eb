package main

import (
	"os"
	"os/signal"
	"runtime/pprof"
	"sort"
	"strconv"

	"github.com/evilsocket/islazy/log"
	"github.com/evilsocket/islazy/str"
	"github.com/joho/godotenv"

	"github.com/wlanstack/wlansta/models"
	"github.com/wlanstack/wlansta/station"
)

func cleanup() {
	if sta != nil {
		sta.Stop()
	}

	if cpuProfile != "" {
		log.Info("writing CPU profile to %s ...", cpuProfile)
		pprof.StopCPUProfile()
	}

	if memProfile != "" {
		log.Info("writing memory profile to %s ...", memProfile)
		f, err := os.Create(memProfile)
		if err != nil {
			log.Fatal("%v", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				panic(err)
			}
		}()
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic(err)
		}
	}
}

func setupCore() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for sig := range c {
			log.Warning("received signal %v", sig)
			cleanup()
			os.Exit(0)
		}
	}()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("%v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
	}

	if debug {
		log.Level = log.DEBUG
	} else {
		log.Level = log.INFO
	}
	log.OnFatal = log.ExitOnFatal
}

func setupDB() {
	if err := godotenv.Load(env); err != nil {
		if nodb {
			log.Warning("%v", err)
			return
		}
		log.Fatal("%v", err)
	}
	if err := models.Setup(); err != nil {
		if nodb {
			log.Warning("database not available: %v", err)
			return
		}
		log.Fatal("%v", err)
	}
}

func setupChannels(config *station.Config) {
	if chanList == "" {
		return
	}
	channels := []int{}
	for _, s := range str.Comma(chanList) {
		if ch, err := strconv.Atoi(s); err != nil {
			log.Fatal("%v", err)
		} else {
			channels = append(channels, ch)
		}
	}
	if len(channels) > 0 {
		sort.Ints(channels)
		config.Channels = channels
	}
}

func setupStation(config *station.Config) {
	addr, err := station.InterfaceAddress(config.Interface)
	if err != nil {
		log.Fatal("error reading %s address: %v", config.Interface, err)
	}

	if supported, err := station.SupportedChannels(config.Interface); err != nil {
		log.Debug("could not enumerate channels of %s: %v", config.Interface, err)
	} else if len(supported) > 0 {
		usable := []int{}
		for _, ch := range config.Channels {
			for _, s := range supported {
				if ch == s {
					usable = append(usable, ch)
					break
				}
			}
		}
		if len(usable) > 0 && len(usable) != len(config.Channels) {
			log.Warning("%s only supports %d of the %d configured channels", config.Interface, len(usable), len(config.Channels))
			config.Channels = usable
		}
	}

	radio, err := station.NewPcapRadio(config.Interface, bpfFilter, workers)
	if err != nil {
		log.Fatal("%v", err)
	}

	sta = station.New(config, radio, addr)
	sta.OnSighting(recordSighting)

	if err := sta.Start(); err != nil {
		log.Fatal("error starting station: %v", err)
	}
	log.Info("station %s on %s ready", addr, config.Interface)
}
