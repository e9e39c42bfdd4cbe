// Package pcap reads packets from capture files or live interfaces and feeds
// them into the parsing pipeline.
package pcap

import (
	"log"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"FlowSpectra/internal/model"
	"FlowSpectra/internal/protocol"
)

// Reader reads packets from a pcap handle.
type Reader struct {
	handle *pcap.Handle
}

// NewReader creates a reader for a capture file.
func NewReader(filePath string) (*Reader, error) {
	handle, err := pcap.OpenOffline(filePath)
	if err != nil {
		return nil, err
	}
	return &Reader{handle: handle}, nil
}

// NewLiveReader creates a reader capturing from a network interface.
func NewLiveReader(iface string, snaplen int32) (*Reader, error) {
	handle, err := pcap.OpenLive(iface, snaplen, true, pcap.BlockForever)
	if err != nil {
		return nil, err
	}
	return &Reader{handle: handle}, nil
}

// Close closes the pcap handle.
func (r *Reader) Close() {
	r.handle.Close()
}

// ReadPackets parses every packet from the handle and sends the results to
// the provided channel. Parse failures are logged and skipped; unsupported
// traffic must not abort a capture run.
func (r *Reader) ReadPackets(out chan<- *model.PacketInfo) {
	packetSource := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	for packet := range packetSource.Packets() {
		info, err := protocol.ParsePacket(packet.Data(), packet.Metadata().Timestamp)
		if err != nil {
			log.Printf("Error parsing packet: %v", err)
			continue
		}
		out <- info
	}
}
