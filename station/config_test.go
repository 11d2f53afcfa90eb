package station

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	dir, err := ioutil.TempDir("", "wlansta")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "mon0", cfg.Interface)
	assert.Len(t, cfg.Channels, 11)
	assert.Equal(t, 150, cfg.DwellMs)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
interface: wlan1
channels: [1, 6, 11]
dwell_ms: 200
beacon_miss_limit: 5
networks:
  - ssid: home
    passphrase: hunter22
    priority: 10
  - ssid: home
    passphrase: legacy
    priority: 1
  - ssid: office
    passphrase: corporate
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "wlan1", cfg.Interface)
	assert.Equal(t, []int{1, 6, 11}, cfg.Channels)
	assert.Equal(t, 200, cfg.DwellMs)
	assert.Equal(t, 5, cfg.BeaconMissLimit)
	// unset fields keep their defaults
	assert.Equal(t, 3, cfg.MaxAuthRetries)

	creds := cfg.Credentials("home")
	require.NotNil(t, creds)
	assert.Equal(t, "hunter22", creds.Passphrase)

	assert.Nil(t, cfg.Credentials("unknown"))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/does/not/exist.yml")
	assert.Error(t, err)
}

func TestMLMEConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	mc := cfg.MLMEConfig()
	assert.Equal(t, 500*time.Millisecond, mc.AuthTimeout)
	assert.Equal(t, 3, mc.MaxAuthRetries)
	assert.Equal(t, cfg.BeaconMissLimit, mc.BeaconMissThreshold)
	assert.Equal(t, 150*time.Millisecond, mc.ScanDwell)
}
