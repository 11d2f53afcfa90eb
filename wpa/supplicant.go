package wpa

import (
	"errors"
	"net"

	"github.com/wlanstack/wlansta/crypto"
	"github.com/wlanstack/wlansta/wifi"
)

// Version selects the handshake flavor negotiated during association.
type Version int

const (
	WPA1 Version = 1
	WPA2 Version = 2
)

// HandshakeState tracks the 4-way handshake progression.
type HandshakeState int

const (
	StateIdle HandshakeState = iota
	StateWaitingMsg1
	StateWaitingMsg3
	StateComplete
	StateFailed
)

func (s HandshakeState) String() string {
	switch s {
	case StateWaitingMsg1:
		return "waiting-msg1"
	case StateWaitingMsg3:
		return "waiting-msg3"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return "idle"
}

// Event is the outcome of feeding one EAPOL frame to the supplicant.
type Event int

const (
	EventNone Event = iota
	EventMessage2Ready
	EventMessage4Ready
	EventComplete
	EventFailed
)

var (
	ErrNotConfigured = errors.New("supplicant is not configured")
	ErrNotStarted    = errors.New("handshake has not been started")
	ErrReplayed      = errors.New("stale replay counter")
	ErrUnexpectedKey = errors.New("unexpected key information flags")
	ErrMICMismatch   = errors.New("message integrity check failed")
	ErrNonceMismatch = errors.New("authenticator nonce changed between messages")
	ErrFailed        = errors.New("handshake already failed")
)

// Supplicant drives the station side of the WPA/WPA2 4-way handshake.
// It is a pure state container: the owner feeds it EAPOL frames in
// arrival order and transmits whatever GetOutgoingMessage returns.
// The PMK is fixed at configuration time; only the PTK, GTK and replay
// counter mutate as the handshake advances.
type Supplicant struct {
	state   HandshakeState
	version Version

	pmk    [crypto.PMKLen]byte
	ptk    *PTK
	gtk    *GTK
	sta    net.HardwareAddr
	ap     net.HardwareAddr
	snonce [32]byte
	anonce [32]byte

	replay     uint64
	haveReplay bool

	// at most one frame pending transmission at a time
	pending []byte

	configured bool
}

// NewSupplicant creates an unconfigured supplicant. The local nonce is
// generated here and never regenerated for the lifetime of the instance.
func NewSupplicant() *Supplicant {
	return &Supplicant{
		state:  StateIdle,
		snonce: crypto.Nonce(),
	}
}

// Configure derives the PMK from the credentials and records both ends
// of the link. It must be called before Start.
func (s *Supplicant) Configure(passphrase, ssid string, sta, ap net.HardwareAddr, version Version) {
	s.pmk = crypto.DerivePMK(passphrase, ssid)
	s.sta = append(net.HardwareAddr(nil), sta...)
	s.ap = append(net.HardwareAddr(nil), ap...)
	s.version = version
	s.configured = true
}

func (s *Supplicant) Start() error {
	if !s.configured {
		return ErrNotConfigured
	}
	s.state = StateWaitingMsg1
	return nil
}

func (s *Supplicant) State() HandshakeState { return s.state }

// PTK returns the derived pairwise key, or nil before message 1 has
// been processed.
func (s *Supplicant) PTK() *PTK { return s.ptk }

// GTK returns the group key extracted from message 3, or nil if the
// authenticator did not deliver one.
func (s *Supplicant) GTK() *GTK { return s.gtk }

// GetOutgoingMessage drains the pending outgoing EAPOL frame, if any.
func (s *Supplicant) GetOutgoingMessage() []byte {
	out := s.pending
	s.pending = nil
	return out
}

// ProcessEAPOL consumes one received EAPOL frame. Malformed input is
// ignored; protocol violations move the handshake to Failed and are
// reported as errors alongside the terminal state.
func (s *Supplicant) ProcessEAPOL(buf []byte) (Event, error) {
	frame, err := DecodeKeyFrame(buf)
	if err != nil {
		// noise on the medium, not a protocol violation
		return EventNone, nil
	}

	// replay protection comes before any other processing
	if s.haveReplay && frame.ReplayCounter < s.replay {
		return EventNone, ErrReplayed
	}

	switch s.state {
	case StateWaitingMsg1:
		return s.processMessage1(frame)
	case StateWaitingMsg3:
		return s.processMessage3(frame, buf)
	case StateComplete:
		// retransmissions after completion carry no new state
		return EventComplete, nil
	case StateFailed:
		return EventFailed, ErrFailed
	}
	return EventNone, ErrNotStarted
}

func (s *Supplicant) fail(err error) (Event, error) {
	s.state = StateFailed
	s.pending = nil
	return EventFailed, err
}

// processMessage1 stores the authenticator nonce, derives the PTK and
// queues message 2.
func (s *Supplicant) processMessage1(frame *KeyFrame) (Event, error) {
	if !frame.HasAck() || !frame.IsPairwise() {
		return s.fail(ErrUnexpectedKey)
	}

	s.anonce = frame.Nonce
	s.ptk = DerivePTK(s.pmk[:], s.ap, s.sta, s.anonce, s.snonce)

	reply := &KeyFrame{
		Version:        ProtocolVersion,
		Type:           PacketTypeKey,
		DescriptorType: s.descriptorType(),
		KeyInfo:        s.keyInfoVersion() | KeyInfoPairwise | KeyInfoMIC,
		ReplayCounter:  frame.ReplayCounter,
		Nonce:          s.snonce,
		KeyData:        wifi.RSNElement(),
	}
	s.sign(reply)

	s.pending = reply.Encode()
	s.replay = frame.ReplayCounter
	s.haveReplay = true
	s.state = StateWaitingMsg3
	return EventMessage2Ready, nil
}

// processMessage3 verifies the MIC and nonce, unwraps any delivered
// group key and queues message 4.
func (s *Supplicant) processMessage3(frame *KeyFrame, raw []byte) (Event, error) {
	if !frame.HasAck() || !frame.HasMIC() || !frame.IsSecure() {
		return s.fail(ErrUnexpectedKey)
	}

	if !s.verifyMIC(frame, raw) {
		return s.fail(ErrMICMismatch)
	}

	if frame.Nonce != s.anonce {
		return s.fail(ErrNonceMismatch)
	}

	if frame.IsEncrypted() && len(frame.KeyData) > 0 {
		plain, err := crypto.KeyUnwrap(s.ptk.KEK[:], frame.KeyData)
		if err != nil {
			return s.fail(err)
		}
		s.gtk = ParseGTK(plain)
	}

	reply := &KeyFrame{
		Version:        ProtocolVersion,
		Type:           PacketTypeKey,
		DescriptorType: s.descriptorType(),
		KeyInfo:        s.keyInfoVersion() | KeyInfoPairwise | KeyInfoMIC | KeyInfoSecure,
		ReplayCounter:  frame.ReplayCounter,
	}
	s.sign(reply)

	s.pending = reply.Encode()
	s.replay = frame.ReplayCounter
	s.state = StateComplete
	return EventMessage4Ready, nil
}

// verifyMIC recomputes the MIC over the raw frame with its MIC field
// zeroed and compares in constant time.
func (s *Supplicant) verifyMIC(frame *KeyFrame, raw []byte) bool {
	zeroed := append([]byte(nil), raw...)
	for i := 81; i < 97 && i < len(zeroed); i++ {
		zeroed[i] = 0
	}
	computed := crypto.MIC(s.ptk.KCK[:], zeroed)
	return crypto.MICEqual(computed[:], frame.MIC[:])
}

func (s *Supplicant) sign(frame *KeyFrame) {
	frame.MIC = crypto.MIC(s.ptk.KCK[:], frame.EncodeZeroMIC())
}

func (s *Supplicant) descriptorType() uint8 {
	if s.version == WPA1 {
		return DescriptorTypeWPA
	}
	return DescriptorTypeRSN
}

func (s *Supplicant) keyInfoVersion() uint16 {
	if s.version == WPA1 {
		return 1
	}
	return 2
}
