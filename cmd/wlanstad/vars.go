package main

import (
	"flag"

	"github.com/evilsocket/islazy/log"

	"github.com/wlanstack/wlansta/api"
	"github.com/wlanstack/wlansta/station"
)

var (
	debug      = false
	ver        = false
	routes     = false
	nodb       = false
	address    = "127.0.0.1:8667"
	env        = ".env"
	configPath = ""
	chanList   = ""
	bpfFilter  = "type mgt or type data"
	workers    = 4
	cpuProfile = ""
	memProfile = ""
	sta        = (*station.Station)(nil)
	server     = (*api.API)(nil)
)

func init() {
	flag.BoolVar(&ver, "version", ver, "Print version and exit.")
	flag.BoolVar(&debug, "debug", debug, "Enable debug logs.")
	flag.BoolVar(&routes, "routes", routes, "Generate routes documentation and exit.")
	flag.BoolVar(&nodb, "no-db", nodb, "Don't fail if database connection can't be enstablished.")
	flag.StringVar(&log.Output, "log", log.Output, "Log file path or empty for standard output.")
	flag.StringVar(&address, "address", address, "API address.")
	flag.StringVar(&env, "env", env, "Load .env from.")
	flag.StringVar(&configPath, "config", configPath, "YAML configuration file.")
	flag.StringVar(&chanList, "channels", chanList, "Comma separated list of channels to scan, overrides the configuration file.")

	flag.StringVar(&bpfFilter, "filter", bpfFilter, "BPF filter for the capture handle.")
	flag.IntVar(&workers, "workers", workers, "Number of frame processing workers.")
	flag.IntVar(&station.ReadTimeout, "read-timeout", station.ReadTimeout, "Read timeout in milliseconds for the capture handle.")

	flag.StringVar(&cpuProfile, "cpu-profile", cpuProfile, "Generate CPU profile to this file.")
	flag.StringVar(&memProfile, "mem-profile", memProfile, "Generate memory profile to this file.")
}
