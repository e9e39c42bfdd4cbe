package features

import (
	"FlowSpectra/internal/model"
	"FlowSpectra/internal/stats"
)

// Volume summarizes the byte counts of one flow per direction.
type Volume struct {
	BytesSent          uint64
	BytesReceived      uint64
	ForwardHeaderBytes uint64
	ReverseHeaderBytes uint64
	InitialTTL         uint8
	duration           float64
}

// NewVolume walks the packet list once and tallies the directional byte
// counters. The rates are derived from the flow duration on demand.
func NewVolume(packets []model.DirectedPacket) Volume {
	v := Volume{duration: Duration(packets)}
	if len(packets) > 0 {
		v.InitialTTL = packets[0].Packet.TTL
	}
	for _, dp := range packets {
		switch dp.Direction {
		case model.Forward:
			v.BytesSent += uint64(dp.Packet.Length)
			v.ForwardHeaderBytes += uint64(dp.Packet.HeaderBytes)
		case model.Reverse:
			v.BytesReceived += uint64(dp.Packet.Length)
			v.ReverseHeaderBytes += uint64(dp.Packet.HeaderBytes)
		}
	}
	return v
}

// SentRate returns the forward byte rate in bytes per second, or the
// undefined sentinel for flows without a measurable duration.
func (v Volume) SentRate() float64 {
	if v.duration <= 0 {
		return stats.Undefined
	}
	return float64(v.BytesSent) / v.duration
}

// ReceivedRate returns the reverse byte rate in bytes per second, or the
// undefined sentinel for flows without a measurable duration.
func (v Volume) ReceivedRate() float64 {
	if v.duration <= 0 {
		return stats.Undefined
	}
	return float64(v.BytesReceived) / v.duration
}
