// Package features derives the per-flow feature groups from an accumulated
// packet list. Every numeric group builds a stats.Series and reuses the same
// descriptive-statistics pattern, sentinel rules included.
package features

import (
	"FlowSpectra/internal/model"
	"FlowSpectra/internal/stats"
)

// ResponseTimes extracts the timing-difference series of a flow: for every
// adjacent pair where a Forward packet is immediately followed, in arrival
// order, by a Reverse packet, the delta between their timestamps in seconds.
// Same-direction transitions and Reverse->Forward transitions emit nothing,
// so a flow without a response never produces a sample.
func ResponseTimes(packets []model.DirectedPacket) stats.Series {
	var series stats.Series
	for i := 1; i < len(packets); i++ {
		prev, cur := packets[i-1], packets[i]
		if prev.Direction == model.Forward && cur.Direction == model.Reverse {
			series = append(series, cur.Packet.Timestamp.Sub(prev.Packet.Timestamp).Seconds())
		}
	}
	return series
}
