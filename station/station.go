package station

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/evilsocket/islazy/log"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/wlanstack/wlansta/mlme"
	"github.com/wlanstack/wlansta/wifi"
	"github.com/wlanstack/wlansta/wpa"
)

// SightingCallback is invoked for every network discovered during a
// scan, after it has been added to the result set.
type SightingCallback func(net mlme.Network)

// Status is a point in time snapshot of the station, safe to hand out
// to the API layer.
type Status struct {
	Interface     string `json:"interface"`
	State         string `json:"state"`
	SSID          string `json:"ssid"`
	BSSID         string `json:"bssid"`
	AssociationID uint16 `json:"association_id"`
	Security      string `json:"security"`
	Handshake     string `json:"handshake"`
}

// Station owns the management state machine, the handshake supplicant
// and the radio, serializing every access behind one lock: the radio
// callback, the beacon timer and the operations started by the API all
// contend for the same two state machines.
type Station struct {
	sync.Mutex

	config *Config
	radio  Radio
	mlme   *mlme.MLME
	sup    *wpa.Supplicant

	current  *mlme.Network
	eapolSeq uint16
	stop     chan struct{}
	running  bool

	onSighting SightingCallback
}

func New(config *Config, radio Radio, addr net.HardwareAddr) *Station {
	return &Station{
		config: config,
		radio:  radio,
		mlme:   mlme.New(addr, config.MLMEConfig()),
		stop:   make(chan struct{}),
	}
}

// OnSighting registers the scan result callback. Must be called before
// Start.
func (s *Station) OnSighting(cb SightingCallback) {
	s.onSighting = cb
}

func (s *Station) Start() error {
	s.Lock()
	defer s.Unlock()

	if s.running {
		return fmt.Errorf("station already started")
	}

	s.radio.OnPacket(s.onPacket)
	if err := s.radio.Start(); err != nil {
		return err
	}

	s.running = true
	go s.beaconLoop()
	return nil
}

func (s *Station) Stop() {
	s.Lock()
	defer s.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
	s.radio.Close()
}

func (s *Station) Status() Status {
	s.Lock()
	defer s.Unlock()

	st := Status{
		Interface: s.config.Interface,
		State:     s.mlme.State().String(),
		SSID:      s.mlme.SSID(),
		BSSID:     s.mlme.BSSID().String(),
	}
	st.AssociationID = s.mlme.AssociationID()
	if s.current != nil {
		st.Security = s.current.Security.String()
	}
	if s.sup != nil {
		st.Handshake = s.sup.State().String()
	}
	return st
}

// Results returns the networks found by the most recent scan.
func (s *Station) Results() []mlme.Network {
	s.Lock()
	defer s.Unlock()
	return s.mlme.Results()
}

func (s *Station) beaconLoop() {
	period := time.Duration(s.config.BeaconIntervalMs) * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Lock()
			s.mlme.CheckBeaconMiss()
			s.drainEvents()
			s.Unlock()
		}
	}
}

// onPacket is the radio callback. EAPOL frames are routed to the
// supplicant when a handshake is in flight, everything else goes to the
// management state machine. Handshake replies are transmitted after the
// lock is released so a radio delivering frames synchronously from
// Transmit can not re-enter and deadlock.
func (s *Station) onPacket(pkt gopacket.Packet) {
	if eapol := wifi.EAPOLPayload(pkt); eapol != nil {
		if out := s.handleEAPOL(pkt, eapol); out != nil {
			s.transmitEAPOL(out)
		}
		return
	}

	s.Lock()
	defer s.Unlock()
	s.mlme.ProcessPacket(pkt)
	s.drainEvents()
}

// handleEAPOL feeds one EAPOL frame to the supplicant, returning the
// reply to transmit, if any.
func (s *Station) handleEAPOL(pkt gopacket.Packet, eapol []byte) []byte {
	s.Lock()
	defer s.Unlock()

	if s.sup == nil {
		log.Debug("dropping EAPOL frame, no handshake in flight")
		return nil
	}

	if ok, _, dot11 := wifi.Parse(pkt); ok {
		if bssid := s.mlme.BSSID(); bssid != nil && dot11.Address2.String() != bssid.String() {
			return nil
		}
	}

	event, err := s.sup.ProcessEAPOL(eapol)
	if err != nil {
		log.Warning("handshake error: %v", err)
	}

	switch event {
	case wpa.EventMessage2Ready:
		log.Debug("built handshake message 2 for %s", s.mlme.BSSID())
	case wpa.EventMessage4Ready:
		log.Info("handshake with %s complete", s.mlme.BSSID())
		s.logKeys()
	case wpa.EventFailed:
		log.Error("handshake with %s failed", s.mlme.BSSID())
	}

	return s.sup.GetOutgoingMessage()
}

func (s *Station) logKeys() {
	if ptk := s.sup.PTK(); ptk != nil {
		log.Debug("pairwise key installed (tk %x)", ptk.TK)
	}
	if gtk := s.sup.GTK(); gtk != nil {
		log.Debug("group key installed (index %d, %d bytes)", gtk.Index, len(gtk.Key))
	}
}

// transmitEAPOL wraps and sends a handshake message. The radio write
// happens outside the lock.
func (s *Station) transmitEAPOL(eapol []byte) {
	s.Lock()
	s.eapolSeq = (s.eapolSeq + 1) & 0x0fff
	err, frame := wifi.EAPOLFrame(s.mlme.Address(), s.mlme.BSSID(), s.eapolSeq, eapol)
	s.Unlock()
	if err != nil {
		log.Error("error building EAPOL frame: %v", err)
		return
	}
	if err := s.radio.Transmit(frame); err != nil {
		log.Error("error sending EAPOL frame: %v", err)
	}
}

// drainEvents pops and reacts to every queued state machine event.
// Callers must hold the lock.
func (s *Station) drainEvents() {
	for {
		ev, ok := s.mlme.NextEvent()
		if !ok {
			return
		}
		switch e := ev.(type) {
		case mlme.NetworkFound:
			log.Debug("found %s (%s) channel %d rssi %d %s", e.Network.SSID,
				e.Network.BSSID, e.Network.Channel, e.Network.RSSI, e.Network.Security)
			if s.onSighting != nil {
				s.onSighting(e.Network)
			}
		case mlme.AuthCompleted:
			log.Debug("authentication status %d", e.Status)
		case mlme.AssocCompleted:
			log.Debug("association status %d aid %d", e.Status, e.AssociationID)
		case mlme.Deauthenticated:
			log.Info("deauthenticated, reason %d", e.Reason)
			s.dropConnection()
		case mlme.Disassociated:
			log.Info("disassociated, reason %d", e.Reason)
		case mlme.ConnectionLost:
			log.Warning("connection lost, too many missed beacons")
			s.dropConnection()
		case mlme.DataReceived:
			log.Debug("received %d bytes of data", len(e.Payload))
		}
	}
}

func (s *Station) dropConnection() {
	s.sup = nil
	s.current = nil
}

// Scan sweeps the configured channels, dwelling on each one while
// probing, and returns the networks found. An empty ssid performs a
// broadcast scan.
func (s *Station) Scan(ssid string) ([]mlme.Network, error) {
	s.Lock()
	probe, err := s.mlme.Request(mlme.Scan{SSID: ssid, Channels: s.config.Channels})
	if err != nil {
		s.Unlock()
		return nil, err
	}
	s.drainEvents()
	s.Unlock()

	dwell := time.Duration(s.config.DwellMs) * time.Millisecond
	for _, channel := range s.config.Channels {
		if err := s.radio.SetChannel(channel); err != nil {
			log.Warning("error setting channel %d: %v", channel, err)
			continue
		}
		if err := s.radio.Transmit(probe); err != nil {
			log.Warning("error sending probe request: %v", err)
		}
		time.Sleep(dwell)
	}

	s.Lock()
	defer s.Unlock()
	if _, err := s.mlme.Request(mlme.ScanStop{}); err != nil {
		return nil, err
	}
	s.drainEvents()
	return s.mlme.Results(), nil
}

// Connect joins the given network: open authentication, association,
// then the 4-way handshake when the network requires one. Credentials
// must already be present in the configuration for protected networks.
func (s *Station) Connect(ssid string) error {
	target, err := s.findNetwork(ssid)
	if err != nil {
		return err
	}

	switch target.Security {
	case wifi.SecurityOpen, wifi.SecurityWPA, wifi.SecurityWPA2:
	default:
		return fmt.Errorf("%s networks are not supported", target.Security)
	}

	var creds *NetworkConfig
	if target.Security != wifi.SecurityOpen {
		if creds = s.config.Credentials(ssid); creds == nil {
			return fmt.Errorf("no credentials configured for %s", ssid)
		}
	}

	if err := s.radio.SetChannel(target.Channel); err != nil {
		return err
	}

	if err := s.authenticate(target); err != nil {
		return err
	}
	if err := s.associate(target); err != nil {
		return err
	}

	s.Lock()
	s.current = target
	if creds != nil {
		version := wpa.WPA2
		if target.Security == wifi.SecurityWPA {
			version = wpa.WPA1
		}
		s.sup = wpa.NewSupplicant()
		s.sup.Configure(creds.Passphrase, target.SSID, s.mlme.Address(), target.BSSID, version)
		if err := s.sup.Start(); err != nil {
			s.sup = nil
			s.Unlock()
			return err
		}
		s.Unlock()

		if !s.waitFor(5*time.Second, func() bool {
			return s.sup == nil || s.sup.State() == wpa.StateComplete || s.sup.State() == wpa.StateFailed
		}) {
			return fmt.Errorf("handshake with %s timed out", ssid)
		}

		s.Lock()
		defer s.Unlock()
		if s.sup == nil || s.sup.State() != wpa.StateComplete {
			return fmt.Errorf("handshake with %s failed", ssid)
		}
		return nil
	}
	s.Unlock()
	return nil
}

// Disconnect tears the connection down, notifying the access point.
func (s *Station) Disconnect() error {
	s.Lock()
	defer s.Unlock()

	frame, err := s.mlme.Request(mlme.Deauthenticate{
		Reason: layers.Dot11ReasonDeauthStLeaving,
	})
	if err != nil {
		return err
	}
	s.dropConnection()
	if frame != nil {
		return s.radio.Transmit(frame)
	}
	return nil
}

func (s *Station) findNetwork(ssid string) (*mlme.Network, error) {
	pick := func() *mlme.Network {
		s.Lock()
		defer s.Unlock()
		var best *mlme.Network
		for _, n := range s.mlme.Results() {
			if n.SSID != ssid {
				continue
			}
			if best == nil || n.RSSI > best.RSSI {
				found := n
				best = &found
			}
		}
		return best
	}

	if best := pick(); best != nil {
		return best, nil
	}
	// not in the last scan results, look for it
	if _, err := s.Scan(ssid); err != nil {
		return nil, err
	}
	if best := pick(); best != nil {
		return best, nil
	}
	return nil, fmt.Errorf("network %s not found", ssid)
}

func (s *Station) authenticate(target *mlme.Network) error {
	cfg := s.config.MLMEConfig()
	for {
		s.Lock()
		frame, err := s.mlme.Request(mlme.Authenticate{
			BSSID:     target.BSSID,
			Algorithm: layers.Dot11AlgorithmOpen,
		})
		retries := s.mlme.AuthRetries()
		s.Unlock()
		if err != nil {
			return err
		}
		if err := s.radio.Transmit(frame); err != nil {
			return err
		}

		if s.waitFor(cfg.AuthTimeout, func() bool {
			return s.mlme.State() != mlme.StateAuthenticating
		}) {
			break
		}
		if retries >= cfg.MaxAuthRetries {
			return fmt.Errorf("authentication with %s timed out", target.BSSID)
		}
		log.Debug("authentication timeout, retry %d", retries+1)
	}

	s.Lock()
	defer s.Unlock()
	if s.mlme.State() != mlme.StateAuthenticated {
		return fmt.Errorf("authentication with %s refused", target.BSSID)
	}
	return nil
}

func (s *Station) associate(target *mlme.Network) error {
	cfg := s.config.MLMEConfig()
	for {
		s.Lock()
		frame, err := s.mlme.Request(mlme.Associate{
			BSSID: target.BSSID,
			SSID:  target.SSID,
		})
		retries := s.mlme.AssocRetries()
		s.Unlock()
		if err != nil {
			return err
		}
		if err := s.radio.Transmit(frame); err != nil {
			return err
		}

		if s.waitFor(cfg.AssocTimeout, func() bool {
			return s.mlme.State() != mlme.StateAssociating
		}) {
			break
		}
		if retries >= cfg.MaxAssocRetries {
			return fmt.Errorf("association with %s timed out", target.BSSID)
		}
		log.Debug("association timeout, retry %d", retries+1)
	}

	s.Lock()
	defer s.Unlock()
	if s.mlme.State() != mlme.StateAssociated {
		return fmt.Errorf("association with %s refused", target.BSSID)
	}
	return nil
}

// waitFor polls a condition under the lock until it holds or the
// timeout expires.
func (s *Station) waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s.Lock()
		ok := cond()
		s.Unlock()
		if ok {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	s.Lock()
	defer s.Unlock()
	return cond()
}
