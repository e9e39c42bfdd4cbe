package features

import (
	"FlowSpectra/internal/model"
	"FlowSpectra/internal/stats"
)

// listLimit caps the raw per-packet lists emitted alongside the statistics.
// Only the head of long flows is interesting for classification; the
// statistics still cover every packet.
const listLimit = 50

// Lengths extracts the packet-length series over the whole flow.
func Lengths(packets []model.DirectedPacket) stats.Series {
	series := make(stats.Series, 0, len(packets))
	for _, dp := range packets {
		series = append(series, float64(dp.Packet.Length))
	}
	return series
}

// SizeList returns the lengths of the first fifty packets.
func SizeList(packets []model.DirectedPacket) []int {
	n := len(packets)
	if n > listLimit {
		n = listLimit
	}
	sizes := make([]int, 0, n)
	for _, dp := range packets[:n] {
		sizes = append(sizes, dp.Packet.Length)
	}
	return sizes
}

// DirectionList returns the direction tags of the first fifty packets.
func DirectionList(packets []model.DirectedPacket) []string {
	n := len(packets)
	if n > listLimit {
		n = listLimit
	}
	dirs := make([]string, 0, n)
	for _, dp := range packets[:n] {
		dirs = append(dirs, dp.Direction.String())
	}
	return dirs
}
