package station

import (
	"fmt"
	"strings"
	"time"

	"github.com/evilsocket/islazy/async"
	"github.com/evilsocket/islazy/log"
	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

const (
	// Ugly, but gopacket folks are not exporting pcap errors, so ...
	// ref. https://github.com/google/gopacket/blob/96986c90e3e5c7e01deed713ff8058e357c0c047/pcap/pcap.go#L281
	ErrIfaceNotUp = "Interface Not Up"
)

var (
	SnapLength  = 65536
	ReadTimeout = 100
)

// PcapRadio drives a monitor mode interface through libpcap: received
// frames are fanned out to a worker queue, transmission goes through
// the same handle, and channel tuning shells out to iwconfig.
type PcapRadio struct {
	iface   string
	filter  string
	handle  *pcap.Handle
	source  *gopacket.PacketSource
	channel chan gopacket.Packet
	queue   *async.WorkQueue
	stop    chan struct{}

	onPacket PacketCallback
}

func dummyPacketCallback(pkt gopacket.Packet) {

}

func NewPcapRadio(iface, filter string, workers int) (radio *PcapRadio, err error) {
	radio = &PcapRadio{
		iface:    iface,
		filter:   filter,
		stop:     make(chan struct{}),
		onPacket: dummyPacketCallback,
	}

	for retry := 0; ; retry++ {
		inactiveHandle, err := pcap.NewInactiveHandle(iface)
		if err != nil {
			return nil, fmt.Errorf("error while opening interface %s: %s", iface, err)
		}
		defer inactiveHandle.CleanUp()

		if err = inactiveHandle.SetRFMon(true); err != nil {
			log.Warning("error while setting interface %s in monitor mode: %s", iface, err)
		}

		if err = inactiveHandle.SetSnapLen(SnapLength); err != nil {
			return nil, fmt.Errorf("error while setting snap len: %s", err)
		}
		/*
		 * We don't want to pcap.BlockForever otherwise pcap_close(handle)
		 * could hang waiting for a timeout to expire ...
		 */
		readTimeout := time.Duration(ReadTimeout) * time.Millisecond
		if err = inactiveHandle.SetTimeout(readTimeout); err != nil {
			return nil, fmt.Errorf("error while setting timeout: %s", err)
		} else if radio.handle, err = inactiveHandle.Activate(); err != nil {
			if retry == 0 && err.Error() == ErrIfaceNotUp {
				log.Info("interface %s is down, bringing it up ...", iface)
				if err := ActivateInterface(iface); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("error while activating handle: %s", err)
		}

		if filter != "" {
			if err := radio.handle.SetBPFFilter(filter); err != nil {
				return nil, fmt.Errorf("error setting BPF filter '%s': %v", filter, err)
			}
		}

		break
	}

	radio.source = gopacket.NewPacketSource(radio.handle, radio.handle.LinkType())
	radio.channel = radio.source.Packets()
	radio.queue = async.NewQueue(workers, func(arg async.Job) {
		radio.onPacket(arg.(gopacket.Packet))
	})

	return radio, nil
}

func (radio *PcapRadio) OnPacket(cb PacketCallback) {
	radio.onPacket = cb
}

func (radio *PcapRadio) Transmit(data []byte) error {
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		if err = radio.handle.WritePacketData(data); err == nil {
			return nil
		} else if strings.Contains(err.Error(), "temporarily unavailable") {
			log.Debug("resource temporarily unavailable when sending data")
			time.Sleep(200 * time.Millisecond)
		} else {
			return err
		}
	}
	return err
}

func (radio *PcapRadio) SetChannel(channel int) error {
	err, out := SetChannel(radio.iface, channel)
	if err != nil {
		return fmt.Errorf("%v: %s", err, out)
	}
	return nil
}

func (radio *PcapRadio) Start() error {
	go func() {
		log.Debug("radio capture started (iface:%s filter:%s)", radio.iface, radio.filter)
		for {
			select {
			case packet := <-radio.channel:
				radio.queue.Add(async.Job(packet))
			case <-radio.stop:
				return
			}
		}
	}()
	return nil
}

func (radio *PcapRadio) Close() {
	log.Debug("stopping radio capture ...")
	radio.stop <- struct{}{}
	radio.queue.WaitDone()
	radio.handle.Close()
	log.Debug("radio capture stopped")
}
