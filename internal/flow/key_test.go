package flow

import (
	"net"
	"testing"

	"FlowSpectra/internal/model"
)

func TestKeyCanonicalization(t *testing.T) {
	// P1 (A->B) opens the flow, P2 (B->A) answers. Classified independently,
	// both must derive the same key.
	forward := model.FiveTuple{
		SrcIP:    net.ParseIP("10.0.0.1"),
		DstIP:    net.ParseIP("192.168.1.10"),
		SrcPort:  49152,
		DstPort:  443,
		Protocol: 6,
	}
	reverse := forward.Reversed()

	k1, err := NewKey(forward, model.Forward)
	if err != nil {
		t.Fatalf("NewKey(forward) failed: %v", err)
	}
	k2, err := NewKey(reverse, model.Reverse)
	if err != nil {
		t.Fatalf("NewKey(reverse) failed: %v", err)
	}

	if k1 != k2 {
		t.Errorf("keys differ for the same conversation: %v vs %v", k1, k2)
	}
	if k1.SrcIP != "10.0.0.1" || k1.SrcPort != 49152 {
		t.Errorf("key not oriented on the initiating endpoint: %v", k1)
	}
}

func TestKeyInvalidDirection(t *testing.T) {
	ft := model.FiveTuple{
		SrcIP:   net.ParseIP("10.0.0.1"),
		DstIP:   net.ParseIP("10.0.0.2"),
		SrcPort: 1000,
		DstPort: 2000,
	}
	if _, err := NewKey(ft, model.Direction(7)); err == nil {
		t.Fatal("NewKey accepted an invalid direction")
	}
}
