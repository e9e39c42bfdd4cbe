package features

import (
	"time"

	"FlowSpectra/internal/model"
	"FlowSpectra/internal/stats"
)

// RelativeTimes extracts the packet-time series: each packet's offset in
// seconds from the first packet of the flow.
func RelativeTimes(packets []model.DirectedPacket) stats.Series {
	if len(packets) == 0 {
		return nil
	}
	first := packets[0].Packet.Timestamp
	series := make(stats.Series, 0, len(packets))
	for _, dp := range packets {
		series = append(series, dp.Packet.Timestamp.Sub(first).Seconds())
	}
	return series
}

// RelativeTimeList returns the offsets of the first fifty packets.
func RelativeTimeList(packets []model.DirectedPacket) []float64 {
	series := RelativeTimes(packets)
	if len(series) > listLimit {
		series = series[:listLimit]
	}
	return []float64(series)
}

// StartTime returns the timestamp of the first packet, or the zero time for
// an empty flow.
func StartTime(packets []model.DirectedPacket) time.Time {
	if len(packets) == 0 {
		return time.Time{}
	}
	return packets[0].Packet.Timestamp
}

// Duration returns the time in seconds between the first and the last packet.
func Duration(packets []model.DirectedPacket) float64 {
	if len(packets) < 2 {
		return 0
	}
	first := packets[0].Packet.Timestamp
	last := packets[len(packets)-1].Packet.Timestamp
	return last.Sub(first).Seconds()
}
