package mlme

import (
	"bytes"
	"errors"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/wlanstack/wlansta/wifi"
)

var (
	ErrNotSupported = errors.New("authentication algorithm not supported")
	ErrInvalidState = errors.New("request not valid in the current state")
)

// MLME is the management entity of a single radio interface: a purely
// synchronous state machine consuming received management frames and
// producing the frames to transmit. It performs no I/O and holds no
// locks; the owning driver serializes access and runs the timers.
type MLME struct {
	state  State
	config Config
	addr   net.HardwareAddr

	// connection state, only populated between authentication and
	// disconnect
	bssid         net.HardwareAddr
	ssid          string
	associationID uint16

	authRetries  int
	assocRetries int

	beaconSeen   bool
	beaconMisses int

	seq uint16

	scanSSID string
	results  []Network
	seen     map[string]bool

	events []Event
}

func New(addr net.HardwareAddr, config Config) *MLME {
	return &MLME{
		state:  StateIdle,
		config: config,
		addr:   append(net.HardwareAddr(nil), addr...),
		seen:   make(map[string]bool),
	}
}

func (m *MLME) State() State          { return m.state }
func (m *MLME) Config() Config        { return m.config }
func (m *MLME) Address() net.HardwareAddr { return m.addr }
func (m *MLME) SSID() string          { return m.ssid }
func (m *MLME) AssociationID() uint16 { return m.associationID }
func (m *MLME) AuthRetries() int      { return m.authRetries }
func (m *MLME) AssocRetries() int     { return m.assocRetries }

func (m *MLME) BSSID() net.HardwareAddr {
	return append(net.HardwareAddr(nil), m.bssid...)
}

// Results returns the networks accumulated by the current or last scan.
func (m *MLME) Results() []Network {
	out := make([]Network, len(m.results))
	copy(out, m.results)
	return out
}

// NextEvent drains one pending event from the queue.
func (m *MLME) NextEvent() (Event, bool) {
	if len(m.events) == 0 {
		return nil, false
	}
	ev := m.events[0]
	m.events = m.events[1:]
	return ev, true
}

func (m *MLME) push(ev Event) {
	m.events = append(m.events, ev)
}

func (m *MLME) nextSeq() uint16 {
	m.seq = (m.seq + 1) & 0x0fff
	return m.seq
}

// reset clears all connection state back to idle. The instance itself
// survives for the lifetime of the interface.
func (m *MLME) reset() {
	m.state = StateIdle
	m.bssid = nil
	m.ssid = ""
	m.associationID = 0
	m.authRetries = 0
	m.assocRetries = 0
	m.beaconSeen = false
	m.beaconMisses = 0
}

// Request performs one management operation, returning the frame bytes
// to transmit. Failed requests leave all state untouched.
func (m *MLME) Request(req Request) ([]byte, error) {
	switch r := req.(type) {
	case Scan:
		return m.startScan(r)
	case ScanStop:
		if m.state == StateScanning {
			m.state = StateIdle
			m.push(ScanCompleted{})
		}
		return nil, nil
	case Authenticate:
		return m.startAuthenticate(r)
	case Associate:
		return m.startAssociate(r)
	case Deauthenticate:
		frame, err := m.buildDeauth(r.BSSID, r.Reason)
		if err != nil {
			return nil, err
		}
		m.reset()
		return frame, nil
	case Disassociate:
		frame, err := m.buildDisassoc(r.BSSID, r.Reason)
		if err != nil {
			return nil, err
		}
		if m.state == StateAssociated || m.state == StateAssociating {
			m.state = StateAuthenticated
		}
		m.associationID = 0
		return frame, nil
	}
	return nil, ErrInvalidState
}

func (m *MLME) startScan(r Scan) ([]byte, error) {
	// scanning would silently abandon an authentication or association,
	// the owner must tear the connection down first
	if m.state != StateIdle && m.state != StateScanning {
		return nil, ErrInvalidState
	}

	m.results = nil
	m.seen = make(map[string]bool)
	m.scanSSID = r.SSID
	m.state = StateScanning
	m.push(ScanStarted{})

	probeSSID := []byte{}
	if r.SSID != "" {
		probeSSID = []byte(r.SSID)
	}

	err, frame := wifi.Serialize(
		&layers.Dot11{
			Address1:       wifi.BroadcastAddr,
			Address2:       m.addr,
			Address3:       wifi.BroadcastAddr,
			Type:           layers.Dot11TypeMgmtProbeReq,
			SequenceNumber: m.nextSeq(),
		},
		wifi.Info(wifi.IDSSID, probeSSID),
		wifi.Info(wifi.IDRates, wifi.BasicRates),
	)
	return frame, err
}

func (m *MLME) startAuthenticate(r Authenticate) ([]byte, error) {
	if r.Algorithm != layers.Dot11AlgorithmOpen {
		return nil, ErrNotSupported
	}

	// a re-request for the BSSID already being authenticated is the
	// owner retransmitting on timeout
	if m.state == StateAuthenticating && bytes.Equal(m.bssid, r.BSSID) {
		m.authRetries++
	} else {
		m.authRetries = 0
	}

	err, frame := wifi.Serialize(
		&layers.Dot11{
			Address1:       r.BSSID,
			Address2:       m.addr,
			Address3:       r.BSSID,
			Type:           layers.Dot11TypeMgmtAuthentication,
			SequenceNumber: m.nextSeq(),
		},
		&layers.Dot11MgmtAuthentication{
			Algorithm: layers.Dot11AlgorithmOpen,
			Sequence:  1,
			Status:    layers.Dot11StatusSuccess,
		},
	)
	if err != nil {
		return nil, err
	}

	m.bssid = append(net.HardwareAddr(nil), r.BSSID...)
	m.state = StateAuthenticating
	return frame, nil
}

func (m *MLME) startAssociate(r Associate) ([]byte, error) {
	// valid from Authenticated, or re-issued from Associating when the
	// owner retransmits on timeout
	if m.state == StateAssociating && bytes.Equal(m.bssid, r.BSSID) {
		m.assocRetries++
	} else if m.state == StateAuthenticated && bytes.Equal(m.bssid, r.BSSID) {
		m.assocRetries = 0
	} else {
		return nil, ErrInvalidState
	}

	err, frame := wifi.Serialize(
		&layers.Dot11{
			Address1:       r.BSSID,
			Address2:       m.addr,
			Address3:       r.BSSID,
			Type:           layers.Dot11TypeMgmtAssociationReq,
			SequenceNumber: m.nextSeq(),
		},
		&layers.Dot11MgmtAssociationReq{
			CapabilityInfo: wifi.CapabilityESS,
			ListenInterval: 10,
		},
		wifi.Info(wifi.IDSSID, []byte(r.SSID)),
		wifi.Info(wifi.IDRates, wifi.BasicRates),
	)
	if err != nil {
		return nil, err
	}

	m.ssid = r.SSID
	m.state = StateAssociating
	return frame, nil
}

func (m *MLME) buildDeauth(bssid net.HardwareAddr, reason layers.Dot11Reason) ([]byte, error) {
	target := bssid
	if len(target) == 0 {
		target = m.bssid
	}
	if len(target) == 0 {
		target = wifi.BroadcastAddr
	}

	err, frame := wifi.Serialize(
		&layers.Dot11{
			Address1:       target,
			Address2:       m.addr,
			Address3:       target,
			Type:           layers.Dot11TypeMgmtDeauthentication,
			SequenceNumber: m.nextSeq(),
		},
		&layers.Dot11MgmtDeauthentication{Reason: reason},
	)
	return frame, err
}

func (m *MLME) buildDisassoc(bssid net.HardwareAddr, reason layers.Dot11Reason) ([]byte, error) {
	target := bssid
	if len(target) == 0 {
		target = m.bssid
	}
	if len(target) == 0 {
		target = wifi.BroadcastAddr
	}

	err, frame := wifi.Serialize(
		&layers.Dot11{
			Address1:       target,
			Address2:       m.addr,
			Address3:       target,
			Type:           layers.Dot11TypeMgmtDisassociation,
			SequenceNumber: m.nextSeq(),
		},
		&layers.Dot11MgmtDisassociation{Reason: reason},
	)
	return frame, err
}

// ProcessFrame decodes and dispatches one received frame. Undecodable
// or irrelevant input is silently ignored, tolerating a noisy medium.
func (m *MLME) ProcessFrame(buf []byte) {
	m.ProcessPacket(gopacket.NewPacket(buf, layers.LayerTypeDot11, gopacket.NoCopy))
}

// ProcessPacket is ProcessFrame for an already decoded capture, where
// the RadioTap header is still available for signal and channel info.
func (m *MLME) ProcessPacket(pkt gopacket.Packet) {
	ok, radio, dot11 := wifi.Parse(pkt)
	if !ok {
		return
	}

	if l := pkt.Layer(layers.LayerTypeDot11MgmtBeacon); l != nil {
		m.handleBeacon(pkt, radio, dot11, l.(*layers.Dot11MgmtBeacon).Flags)
		return
	}
	if l := pkt.Layer(layers.LayerTypeDot11MgmtProbeResp); l != nil {
		m.handleBeacon(pkt, radio, dot11, l.(*layers.Dot11MgmtProbeResp).Flags)
		return
	}
	if l := pkt.Layer(layers.LayerTypeDot11MgmtAuthentication); l != nil {
		m.handleAuthentication(dot11, l.(*layers.Dot11MgmtAuthentication))
		return
	}
	if l := pkt.Layer(layers.LayerTypeDot11MgmtDeauthentication); l != nil {
		m.handleDeauthentication(dot11, l.(*layers.Dot11MgmtDeauthentication))
		return
	}
	if l := pkt.Layer(layers.LayerTypeDot11MgmtAssociationResp); l != nil {
		m.handleAssociationResponse(dot11, l.(*layers.Dot11MgmtAssociationResp))
		return
	}
	if l := pkt.Layer(layers.LayerTypeDot11MgmtDisassociation); l != nil {
		m.handleDisassociation(dot11, l.(*layers.Dot11MgmtDisassociation))
		return
	}
	if dot11.Type.MainType() == layers.Dot11TypeData {
		m.handleData(pkt, dot11)
	}
}

func (m *MLME) fromCurrentBSSID(dot11 *layers.Dot11) bool {
	return len(m.bssid) != 0 && bytes.Equal(dot11.Address3, m.bssid)
}

func (m *MLME) handleBeacon(pkt gopacket.Packet, radio *layers.RadioTap, dot11 *layers.Dot11, capabilities uint16) {
	if m.fromCurrentBSSID(dot11) {
		m.beaconSeen = true
	}

	if m.state != StateScanning {
		return
	}

	bssid := dot11.Address3
	if m.seen[bssid.String()] {
		return
	}

	ssid, hasSSID := wifi.SSIDOf(pkt)
	if !hasSSID {
		return
	}
	if m.scanSSID != "" && ssid != m.scanSSID {
		return
	}

	network := Network{
		SSID:    ssid,
		BSSID:   append(net.HardwareAddr(nil), bssid...),
		Channel: wifi.ChannelOf(pkt),
		Width:   wifi.WidthOf(pkt),
	}

	if radio != nil {
		network.RSSI = radio.DBMAntennaSignal
		network.Frequency = int(radio.ChannelFrequency)
	}
	if network.Channel == 0 && network.Frequency != 0 {
		network.Channel = wifi.Freq2Chan(network.Frequency)
	} else if network.Frequency == 0 && network.Channel != 0 {
		network.Frequency = wifi.Chan2Freq(network.Channel)
	}

	network.Security, network.RSN = wifi.Classify(pkt, capabilities)

	m.seen[bssid.String()] = true
	m.results = append(m.results, network)
	m.push(NetworkFound{Network: network})
}

func (m *MLME) handleAuthentication(dot11 *layers.Dot11, auth *layers.Dot11MgmtAuthentication) {
	if m.state != StateAuthenticating || !m.fromCurrentBSSID(dot11) {
		return
	}
	if auth.Algorithm != layers.Dot11AlgorithmOpen || auth.Sequence != 2 {
		return
	}

	if auth.Status == layers.Dot11StatusSuccess {
		m.state = StateAuthenticated
	} else {
		m.reset()
	}
	m.push(AuthCompleted{Status: auth.Status})
}

func (m *MLME) handleDeauthentication(dot11 *layers.Dot11, deauth *layers.Dot11MgmtDeauthentication) {
	if !m.fromCurrentBSSID(dot11) {
		return
	}
	m.reset()
	m.push(Deauthenticated{Reason: deauth.Reason})
}

func (m *MLME) handleAssociationResponse(dot11 *layers.Dot11, resp *layers.Dot11MgmtAssociationResp) {
	if m.state != StateAssociating || !m.fromCurrentBSSID(dot11) {
		return
	}

	if resp.Status == layers.Dot11StatusSuccess {
		// the two high bits of the AID field are always set on the air
		m.associationID = resp.AID & 0x3fff
		m.state = StateAssociated
		m.beaconMisses = 0
		m.beaconSeen = false
	} else {
		m.associationID = 0
		m.state = StateAuthenticated
	}
	m.push(AssocCompleted{Status: resp.Status, AssociationID: m.associationID})
}

func (m *MLME) handleDisassociation(dot11 *layers.Dot11, disassoc *layers.Dot11MgmtDisassociation) {
	if m.state != StateAssociated || !m.fromCurrentBSSID(dot11) {
		return
	}
	m.state = StateAuthenticated
	m.associationID = 0
	m.push(Disassociated{Reason: disassoc.Reason})
}

func (m *MLME) handleData(pkt gopacket.Packet, dot11 *layers.Dot11) {
	if m.state != StateAssociated {
		return
	}

	var payload []byte
	if l := pkt.Layer(layers.LayerTypeDot11Data); l != nil {
		payload = l.LayerPayload()
	}
	if payload == nil {
		if l := pkt.Layer(layers.LayerTypeDot11DataQOSData); l != nil {
			payload = l.LayerPayload()
		}
	}
	if payload == nil {
		return
	}

	m.push(DataReceived{Payload: append([]byte(nil), payload...)})
}

// CheckBeaconMiss is invoked by the owner once per expected beacon
// interval while associated. Reaching the miss threshold tears the
// connection down without transmitting a deauthentication frame, so
// the access point may keep a stale association entry.
func (m *MLME) CheckBeaconMiss() {
	if m.state != StateAssociated {
		return
	}

	if m.beaconSeen {
		m.beaconSeen = false
		m.beaconMisses = 0
		return
	}

	m.beaconMisses++
	if m.beaconMisses >= m.config.BeaconMissThreshold {
		m.reset()
		m.push(ConnectionLost{})
	}
}
