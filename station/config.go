package station

import (
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/wlanstack/wlansta/mlme"
)

// NetworkConfig is a stored credential set for a network the station is
// allowed to join.
type NetworkConfig struct {
	SSID       string `yaml:"ssid"`
	Passphrase string `yaml:"passphrase"`
	Priority   int    `yaml:"priority"`
}

// Config is the station daemon configuration file.
type Config struct {
	Interface string `yaml:"interface"`
	Channels  []int  `yaml:"channels"`

	DwellMs          int `yaml:"dwell_ms"`
	BeaconIntervalMs int `yaml:"beacon_interval_ms"`
	AuthTimeoutMs    int `yaml:"auth_timeout_ms"`
	AssocTimeoutMs   int `yaml:"assoc_timeout_ms"`
	MaxAuthRetries   int `yaml:"max_auth_retries"`
	MaxAssocRetries  int `yaml:"max_assoc_retries"`
	BeaconMissLimit  int `yaml:"beacon_miss_limit"`

	Networks []NetworkConfig `yaml:"networks"`
}

func defaultConfig() *Config {
	return &Config{
		Interface:        "mon0",
		Channels:         []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		DwellMs:          150,
		BeaconIntervalMs: 100,
		AuthTimeoutMs:    500,
		AssocTimeoutMs:   500,
		MaxAuthRetries:   3,
		MaxAssocRetries:  3,
		BeaconMissLimit:  10,
	}
}

// LoadConfig reads a YAML configuration file, filling every unset field
// with its default.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %v", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", path, err)
	}

	if len(cfg.Channels) == 0 {
		cfg.Channels = defaultConfig().Channels
	}
	return cfg, nil
}

// Credentials returns the stored credentials for an SSID, or nil.
func (c *Config) Credentials(ssid string) *NetworkConfig {
	var best *NetworkConfig
	for i := range c.Networks {
		n := &c.Networks[i]
		if n.SSID != ssid {
			continue
		}
		if best == nil || n.Priority > best.Priority {
			best = n
		}
	}
	return best
}

// MLMEConfig translates the file values into the state machine tunables.
func (c *Config) MLMEConfig() mlme.Config {
	return mlme.Config{
		AuthTimeout:         time.Duration(c.AuthTimeoutMs) * time.Millisecond,
		AssocTimeout:        time.Duration(c.AssocTimeoutMs) * time.Millisecond,
		MaxAuthRetries:      c.MaxAuthRetries,
		MaxAssocRetries:     c.MaxAssocRetries,
		BeaconMissThreshold: c.BeaconMissLimit,
		ScanDwell:           time.Duration(c.DwellMs) * time.Millisecond,
	}
}
