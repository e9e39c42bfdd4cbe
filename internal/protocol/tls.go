package protocol

import (
	"encoding/binary"

	"FlowSpectra/internal/model"
)

const (
	recordTypeHandshake = 22
	recordHeaderLen     = 5
	helloHeaderLen      = 4 // handshake type + 24-bit length
)

// TLS ALPN extension number; the protocol lists inside it are parsed, the
// other extensions are only recorded by number.
const extALPN uint16 = 16

// ParseHandshake inspects a TCP payload for a TLS handshake record and, when
// one is present, returns a summary of the first handshake message in it.
// Payloads that are not TLS handshakes, or records too truncated to parse,
// return nil. Parsing is best effort: the feature groups treat an absent
// handshake as "no TLS observed", never as an error.
func ParseHandshake(payload []byte) *model.Handshake {
	if len(payload) < recordHeaderLen+helloHeaderLen {
		return nil
	}
	if payload[0] != recordTypeHandshake {
		return nil
	}
	// Record-layer version: 0x03 0x01..0x04.
	if payload[1] != 3 || payload[2] > 4 {
		return nil
	}

	msg := payload[recordHeaderLen:]
	msgType := msg[0]
	msgLen := int(msg[1])<<16 | int(msg[2])<<8 | int(msg[3])
	body := msg[helloHeaderLen:]
	if msgLen < len(body) {
		body = body[:msgLen]
	}

	switch msgType {
	case model.TLSClientHello:
		return parseClientHello(body, msgLen)
	case model.TLSServerHello:
		return parseServerHello(body, msgLen)
	case model.TLSNewSessionTicket:
		return parseNewSessionTicket(body, msgLen)
	default:
		return nil
	}
}

func parseClientHello(body []byte, msgLen int) *model.Handshake {
	hs := &model.Handshake{Type: model.TLSClientHello, MessageLength: msgLen}

	// version(2) + random(32)
	if len(body) < 34 {
		return nil
	}
	hs.Version = binary.BigEndian.Uint16(body)
	off := 34

	// session id
	if off >= len(body) {
		return nil
	}
	off += 1 + int(body[off])

	// cipher suites
	if off+2 > len(body) {
		return nil
	}
	suitesLen := int(binary.BigEndian.Uint16(body[off:]))
	off += 2
	if off+suitesLen > len(body) || suitesLen%2 != 0 {
		return nil
	}
	for i := 0; i < suitesLen; i += 2 {
		hs.CipherSuites = append(hs.CipherSuites, binary.BigEndian.Uint16(body[off+i:]))
	}
	off += suitesLen

	// compression methods
	if off >= len(body) {
		return nil
	}
	compLen := int(body[off])
	off++
	if off+compLen > len(body) {
		return nil
	}
	hs.Compression = append(hs.Compression, body[off:off+compLen]...)
	off += compLen

	// extensions are optional
	if off+2 > len(body) {
		return hs
	}
	parseExtensions(body[off:], hs)
	return hs
}

func parseServerHello(body []byte, msgLen int) *model.Handshake {
	hs := &model.Handshake{Type: model.TLSServerHello, MessageLength: msgLen}

	if len(body) < 34 {
		return nil
	}
	hs.Version = binary.BigEndian.Uint16(body)
	off := 34

	if off >= len(body) {
		return nil
	}
	off += 1 + int(body[off])

	// chosen cipher suite + compression method
	if off+3 > len(body) {
		return nil
	}
	hs.CipherSuites = []uint16{binary.BigEndian.Uint16(body[off:])}
	hs.Compression = []uint8{body[off+2]}
	off += 3

	if off+2 > len(body) {
		return hs
	}
	parseExtensions(body[off:], hs)
	return hs
}

func parseNewSessionTicket(body []byte, msgLen int) *model.Handshake {
	if len(body) < 4 {
		return nil
	}
	return &model.Handshake{
		Type:            model.TLSNewSessionTicket,
		MessageLength:   msgLen,
		SessionLifetime: binary.BigEndian.Uint32(body),
	}
}

func parseExtensions(data []byte, hs *model.Handshake) {
	if len(data) < 2 {
		return
	}
	extsLen := int(binary.BigEndian.Uint16(data))
	data = data[2:]
	if extsLen < len(data) {
		data = data[:extsLen]
	}

	for len(data) >= 4 {
		extType := binary.BigEndian.Uint16(data)
		extLen := int(binary.BigEndian.Uint16(data[2:]))
		data = data[4:]
		if extLen > len(data) {
			return
		}
		hs.Extensions = append(hs.Extensions, extType)
		if extType == extALPN {
			hs.ALPN = parseALPN(data[:extLen])
		}
		data = data[extLen:]
	}
}

func parseALPN(data []byte) []string {
	if len(data) < 2 {
		return nil
	}
	listLen := int(binary.BigEndian.Uint16(data))
	data = data[2:]
	if listLen < len(data) {
		data = data[:listLen]
	}

	var protos []string
	for len(data) > 0 {
		n := int(data[0])
		data = data[1:]
		if n == 0 || n > len(data) {
			return protos
		}
		protos = append(protos, string(data[:n]))
		data = data[n:]
	}
	return protos
}
