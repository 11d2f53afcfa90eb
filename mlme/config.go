package mlme

import "time"

// Config carries the tunables of a management entity. The timeouts and
// retry ceilings are bookkeeping for the owning driver: the MLME tracks
// retry counters but never schedules timers itself.
type Config struct {
	AuthTimeout  time.Duration
	AssocTimeout time.Duration

	MaxAuthRetries  int
	MaxAssocRetries int

	// consecutive missed beacon checks before the link is declared lost
	BeaconMissThreshold int

	// how long the owner should park on each channel while scanning
	ScanDwell time.Duration
}

func DefaultConfig() Config {
	return Config{
		AuthTimeout:         500 * time.Millisecond,
		AssocTimeout:        500 * time.Millisecond,
		MaxAuthRetries:      3,
		MaxAssocRetries:     3,
		BeaconMissThreshold: 10,
		ScanDwell:           150 * time.Millisecond,
	}
}
