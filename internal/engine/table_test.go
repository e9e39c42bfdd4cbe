package engine

import (
	"net"
	"testing"
	"time"

	"FlowSpectra/internal/model"
)

var (
	tableBase = time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)
	clientA   = model.FiveTuple{
		SrcIP:    net.ParseIP("10.0.0.1"),
		DstIP:    net.ParseIP("192.168.1.10"),
		SrcPort:  49152,
		DstPort:  443,
		Protocol: 6,
	}
)

func tablePacket(offset float64, ft model.FiveTuple) *model.PacketInfo {
	return &model.PacketInfo{
		Timestamp: tableBase.Add(time.Duration(offset * float64(time.Second))),
		FiveTuple: ft,
		Length:    100,
	}
}

func TestFlowTableBidirectionalBucketing(t *testing.T) {
	table := NewFlowTable(16)

	if err := table.Add(tablePacket(0.0, clientA)); err != nil {
		t.Fatalf("Add forward packet failed: %v", err)
	}
	if err := table.Add(tablePacket(0.1, clientA.Reversed())); err != nil {
		t.Fatalf("Add reverse packet failed: %v", err)
	}

	if got := table.Len(); got != 1 {
		t.Fatalf("table has %d flows, want 1 (both orientations must share a bucket)", got)
	}

	flows := table.FlushIdle(0, tableBase)
	if len(flows) != 1 {
		t.Fatalf("flushed %d flows, want 1", len(flows))
	}

	packets := flows[0].Packets()
	if len(packets) != 2 {
		t.Fatalf("flow has %d packets, want 2", len(packets))
	}
	if packets[0].Direction != model.Forward {
		t.Errorf("first packet direction = %v, want Forward", packets[0].Direction)
	}
	if packets[1].Direction != model.Reverse {
		t.Errorf("second packet direction = %v, want Reverse", packets[1].Direction)
	}

	// The key is oriented on the initiating endpoint.
	if key := flows[0].Key(); key.SrcIP != "10.0.0.1" || key.SrcPort != 49152 {
		t.Errorf("flow key not oriented on first packet: %v", key)
	}
}

func TestFlowTableReverseFirst(t *testing.T) {
	// If the server side happens to be captured first, it defines Forward.
	table := NewFlowTable(16)

	if err := table.Add(tablePacket(0.0, clientA.Reversed())); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := table.Add(tablePacket(0.1, clientA)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	flows := table.FlushIdle(0, tableBase)
	if len(flows) != 1 {
		t.Fatalf("flushed %d flows, want 1", len(flows))
	}
	if key := flows[0].Key(); key.SrcIP != "192.168.1.10" || key.SrcPort != 443 {
		t.Errorf("flow key = %v, want orientation of the first-seen packet", key)
	}
}

func TestFlowTableSeparatesConversations(t *testing.T) {
	table := NewFlowTable(16)

	other := clientA
	other.SrcPort = 50000

	if err := table.Add(tablePacket(0.0, clientA)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := table.Add(tablePacket(0.1, other)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if got := table.Len(); got != 2 {
		t.Errorf("table has %d flows, want 2", got)
	}
}

func TestFlowTableFlushIdle(t *testing.T) {
	table := NewFlowTable(16)

	if err := table.Add(tablePacket(0.0, clientA)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	other := clientA
	other.SrcPort = 50000
	if err := table.Add(tablePacket(100.0, other)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	now := tableBase.Add(110 * time.Second)
	flushed := table.FlushIdle(60*time.Second, now)
	if len(flushed) != 1 {
		t.Fatalf("flushed %d flows, want 1 (only the idle one)", len(flushed))
	}
	if key := flushed[0].Key(); key.SrcPort != 49152 {
		t.Errorf("flushed the wrong flow: %v", key)
	}
	if table.Len() != 1 {
		t.Errorf("table has %d flows after flush, want 1", table.Len())
	}
}
