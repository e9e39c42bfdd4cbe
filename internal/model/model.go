package model

import (
	"fmt"
	"net"
	"time"
)

// Direction tags which way a packet travels relative to the first packet of
// its flow. The first packet observed for a conversation defines Forward.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the two recognized direction values.
func (d Direction) Valid() bool {
	return d == Forward || d == Reverse
}

// FiveTuple represents the 5-tuple of a network packet.
type FiveTuple struct {
	SrcIP    net.IP
	DstIP    net.IP
	SrcPort  uint16
	DstPort  uint16
	Protocol uint8
}

// Reversed returns the tuple with its endpoints swapped.
func (ft FiveTuple) Reversed() FiveTuple {
	return FiveTuple{
		SrcIP:    ft.DstIP,
		DstIP:    ft.SrcIP,
		SrcPort:  ft.DstPort,
		DstPort:  ft.SrcPort,
		Protocol: ft.Protocol,
	}
}

// TCPFlags holds the flag bits of a TCP segment.
type TCPFlags struct {
	FIN bool
	SYN bool
	RST bool
	PSH bool
	ACK bool
	URG bool
	ECE bool
	CWR bool
}

// Count returns the number of flag bits set.
func (f TCPFlags) Count() int {
	n := 0
	for _, b := range [...]bool{f.FIN, f.SYN, f.RST, f.PSH, f.ACK, f.URG, f.ECE, f.CWR} {
		if b {
			n++
		}
	}
	return n
}

// None reports whether no flag bits are set.
func (f TCPFlags) None() bool {
	return f.Count() == 0
}

// TLS handshake message types carried in Handshake.Type.
const (
	TLSClientHello      uint8 = 1
	TLSServerHello      uint8 = 2
	TLSNewSessionTicket uint8 = 4
)

// Handshake is the pre-parsed summary of a TLS handshake message observed in
// a packet. Extraction happens upstream in the protocol parser; the feature
// groups only read these fields.
type Handshake struct {
	Type            uint8
	Version         uint16
	MessageLength   int
	CipherSuites    []uint16 // ClientHello: offered suites; ServerHello: the single chosen suite
	Compression     []uint8
	Extensions      []uint16
	ALPN            []string
	SessionLifetime uint32 // NewSessionTicket lifetime hint, seconds
}

// HasExtension reports whether the handshake carries the given TLS extension.
func (h *Handshake) HasExtension(ext uint16) bool {
	if h == nil {
		return false
	}
	for _, e := range h.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// PacketInfo holds the metadata extracted from a single packet. It is produced
// once by the protocol parser and referenced, never copied, by the flows that
// accumulate it.
type PacketInfo struct {
	Timestamp   time.Time
	FiveTuple   FiveTuple
	Length      int
	HeaderBytes int
	TTL         uint8
	Flags       TCPFlags
	Handshake   *Handshake // nil for packets without a parsed TLS handshake
}

// DirectedPacket pairs a packet with its direction relative to the flow that
// owns it.
type DirectedPacket struct {
	Packet    *PacketInfo
	Direction Direction
}
