package flow

import (
	"fmt"

	"FlowSpectra/internal/model"
)

// Key is the direction-independent identity of one bidirectional
// conversation. SrcIP/SrcPort always name the endpoint that sent the first
// packet of the flow, so both orientations of the same conversation derive
// an identical Key. All fields are immutable once derived.
type Key struct {
	SrcIP    string
	DstIP    string
	SrcPort  uint16
	DstPort  uint16
	Protocol uint8
}

// NewKey derives the flow key for a packet travelling in the given direction.
// A Reverse packet contributes the same Key as the Forward packet that opened
// the conversation.
func NewKey(ft model.FiveTuple, direction model.Direction) (Key, error) {
	switch direction {
	case model.Forward:
		// Keep orientation as seen.
	case model.Reverse:
		ft = ft.Reversed()
	default:
		return Key{}, fmt.Errorf("flow: cannot derive key for invalid direction %v", direction)
	}
	return Key{
		SrcIP:    ft.SrcIP.String(),
		DstIP:    ft.DstIP.String(),
		SrcPort:  ft.SrcPort,
		DstPort:  ft.DstPort,
		Protocol: ft.Protocol,
	}, nil
}

// String renders the key in the form used for map bucketing and logging.
func (k Key) String() string {
	return fmt.Sprintf("%s:%d-%s:%d-%d", k.SrcIP, k.SrcPort, k.DstIP, k.DstPort, k.Protocol)
}
