package pcap

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"FlowSpectra/internal/model"
)

// writeTestPcap builds a capture file containing one TCP packet followed by
// one ARP packet. Only the TCP packet is expected to survive parsing.
func writeTestPcap(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.pcap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create pcap file: %v", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		t.Fatalf("Failed to write pcap header: %v", err)
	}

	srcMAC := net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	dstMAC := net.HardwareAddr{0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb}
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}

	eth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeIPv4}
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IP{10, 0, 0, 1},
		DstIP:    net.IP{10, 0, 0, 2},
	}
	tcp := &layers.TCP{SrcPort: 49152, DstPort: 443, SYN: true}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("Failed to set network layer: %v", err)
	}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp); err != nil {
		t.Fatalf("Failed to serialize TCP packet: %v", err)
	}
	writePacket(t, w, buf.Bytes(), time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	arpEth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeARP}
	arp := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   srcMAC,
		SourceProtAddress: []byte{10, 0, 0, 1},
		DstHwAddress:      make([]byte, 6),
		DstProtAddress:    []byte{10, 0, 0, 2},
	}
	buf = gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, opts, arpEth, arp); err != nil {
		t.Fatalf("Failed to serialize ARP packet: %v", err)
	}
	writePacket(t, w, buf.Bytes(), time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC))

	return path
}

func writePacket(t *testing.T, w *pcapgo.Writer, data []byte, ts time.Time) {
	t.Helper()
	ci := gopacket.CaptureInfo{Timestamp: ts, CaptureLength: len(data), Length: len(data)}
	if err := w.WritePacket(ci, data); err != nil {
		t.Fatalf("Failed to write packet: %v", err)
	}
}

func TestReader_ReadPackets(t *testing.T) {
	path := writeTestPcap(t)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}
	defer reader.Close()

	out := make(chan *model.PacketInfo)
	go func() {
		reader.ReadPackets(out)
		close(out)
	}()

	var packets []*model.PacketInfo
	for info := range out {
		packets = append(packets, info)
	}

	// The ARP packet has no transport layer and is dropped by the parser.
	if len(packets) != 1 {
		t.Fatalf("Expected to read 1 packet, but got %d", len(packets))
	}

	info := packets[0]
	if info.FiveTuple.SrcIP.String() != "10.0.0.1" || info.FiveTuple.DstIP.String() != "10.0.0.2" {
		t.Errorf("Unexpected addresses: %s -> %s", info.FiveTuple.SrcIP, info.FiveTuple.DstIP)
	}
	if info.FiveTuple.SrcPort != 49152 || info.FiveTuple.DstPort != 443 {
		t.Errorf("Unexpected ports: %d -> %d", info.FiveTuple.SrcPort, info.FiveTuple.DstPort)
	}
	if !info.Flags.SYN {
		t.Errorf("Expected SYN flag to be set")
	}
	want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if !info.Timestamp.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, info.Timestamp)
	}
}

func TestNewReader_MissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.pcap")); err == nil {
		t.Fatal("Expected an error for a missing capture file")
	}
}
