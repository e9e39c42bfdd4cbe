package features

import (
	"fmt"
	"strings"

	"FlowSpectra/internal/model"
)

// TLS extension numbers tracked by the handshake feature group.
const (
	extOCSP                uint16 = 5
	extSupportedGroups     uint16 = 10
	extECPointFormats      uint16 = 11
	extSignatureAlgorithms uint16 = 13
	extCSRv2               uint16 = 17
	extPadding             uint16 = 21
	extExtendedMasterSec   uint16 = 23
	extRecordSizeLimit     uint16 = 28
	extSessionTicket       uint16 = 35
	extSupportedVersions   uint16 = 43
	extPSKKeyExchangeModes uint16 = 45
	extKeyShare            uint16 = 51
	extRenegotiationInfo   uint16 = 65281
)

// TLSSummary holds the handshake-derived features of a flow. It is built
// from the pre-parsed handshake summaries attached to the packets; flows
// without a handshake produce the zero value.
type TLSSummary struct {
	ClientCipherSuites string
	ServerCipherSuite  string
	ClientHelloLength  int
	ServerHelloLength  int
	Compression        string
	SessionLifetime    uint32
	ALPN               string

	// ClientHello extension presence.
	CSR              bool
	KeyShare         bool
	MasterSecret     bool
	OCSP             bool
	Padding          bool
	PSKKeyExchange   bool
	RecordSizeLimit  bool
	Renegotiation    bool
	SessionTicket    bool
	SignatureAlgs    bool
	SupportedGroups  bool
	PointFormats     bool
	SupportedVersion bool
}

// SummarizeTLS scans the flow for the first ClientHello, ServerHello and
// NewSessionTicket and condenses them into the TLS feature fields.
func SummarizeTLS(packets []model.DirectedPacket) TLSSummary {
	var s TLSSummary
	var sawClient, sawServer, sawTicket bool

	for _, dp := range packets {
		hs := dp.Packet.Handshake
		if hs == nil {
			continue
		}
		switch hs.Type {
		case model.TLSClientHello:
			if sawClient {
				continue
			}
			sawClient = true
			s.ClientCipherSuites = joinSuites(hs.CipherSuites)
			s.ClientHelloLength = hs.MessageLength
			s.Compression = joinCompression(hs.Compression)
			s.ALPN = strings.Join(hs.ALPN, ",")

			s.CSR = hs.HasExtension(extCSRv2)
			s.KeyShare = hs.HasExtension(extKeyShare)
			s.MasterSecret = hs.HasExtension(extExtendedMasterSec)
			s.OCSP = hs.HasExtension(extOCSP)
			s.Padding = hs.HasExtension(extPadding)
			s.PSKKeyExchange = hs.HasExtension(extPSKKeyExchangeModes)
			s.RecordSizeLimit = hs.HasExtension(extRecordSizeLimit)
			s.Renegotiation = hs.HasExtension(extRenegotiationInfo)
			s.SessionTicket = hs.HasExtension(extSessionTicket)
			s.SignatureAlgs = hs.HasExtension(extSignatureAlgorithms)
			s.SupportedGroups = hs.HasExtension(extSupportedGroups)
			s.PointFormats = hs.HasExtension(extECPointFormats)
			s.SupportedVersion = hs.HasExtension(extSupportedVersions)
		case model.TLSServerHello:
			if sawServer {
				continue
			}
			sawServer = true
			s.ServerCipherSuite = joinSuites(hs.CipherSuites)
			s.ServerHelloLength = hs.MessageLength
		case model.TLSNewSessionTicket:
			if sawTicket {
				continue
			}
			sawTicket = true
			s.SessionLifetime = hs.SessionLifetime
		}
	}
	return s
}

func joinSuites(suites []uint16) string {
	if len(suites) == 0 {
		return ""
	}
	parts := make([]string, 0, len(suites))
	for _, suite := range suites {
		parts = append(parts, fmt.Sprintf("0x%04x", suite))
	}
	return strings.Join(parts, ",")
}

func joinCompression(methods []uint8) string {
	if len(methods) == 0 {
		return ""
	}
	parts := make([]string, 0, len(methods))
	for _, m := range methods {
		parts = append(parts, fmt.Sprintf("%d", m))
	}
	return strings.Join(parts, ",")
}
