// Package protocol decodes raw frames into the packet metadata consumed by
// the flow engine. It is the upstream producer of the feature pipeline: flows
// only ever see pre-parsed PacketInfo values.
package protocol

import (
	"fmt"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"FlowSpectra/internal/model"
)

// ParsePacket uses gopacket to decode a raw packet and extract the metadata
// the feature groups need: five-tuple, length, TTL, header bytes, TCP flags
// and, for TLS traffic, a handshake summary.
func ParsePacket(data []byte, timestamp time.Time) (*model.PacketInfo, error) {
	packet := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)

	info := &model.PacketInfo{
		Timestamp: timestamp,
		Length:    len(data),
	}
	if info.Timestamp.IsZero() {
		info.Timestamp = time.Now()
	}

	var ipHeaderLen int
	if l := packet.Layer(layers.LayerTypeIPv4); l != nil {
		ip := l.(*layers.IPv4)
		info.FiveTuple.SrcIP = ip.SrcIP
		info.FiveTuple.DstIP = ip.DstIP
		info.FiveTuple.Protocol = uint8(ip.Protocol)
		info.TTL = ip.TTL
		ipHeaderLen = int(ip.IHL) * 4
	} else {
		// IPv6 support lives behind the same tuple shape; skip for now.
		return nil, fmt.Errorf("not an IPv4 packet")
	}

	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		info.FiveTuple.SrcPort = uint16(tcp.SrcPort)
		info.FiveTuple.DstPort = uint16(tcp.DstPort)
		info.HeaderBytes = ipHeaderLen + int(tcp.DataOffset)*4
		info.Flags = model.TCPFlags{
			FIN: tcp.FIN,
			SYN: tcp.SYN,
			RST: tcp.RST,
			PSH: tcp.PSH,
			ACK: tcp.ACK,
			URG: tcp.URG,
			ECE: tcp.ECE,
			CWR: tcp.CWR,
		}
		if hs := ParseHandshake(tcp.Payload); hs != nil {
			info.Handshake = hs
		}
	} else if l := packet.Layer(layers.LayerTypeUDP); l != nil {
		udp := l.(*layers.UDP)
		info.FiveTuple.SrcPort = uint16(udp.SrcPort)
		info.FiveTuple.DstPort = uint16(udp.DstPort)
		info.HeaderBytes = ipHeaderLen + 8
	} else {
		return nil, fmt.Errorf("not a TCP or UDP packet")
	}

	return info, nil
}
