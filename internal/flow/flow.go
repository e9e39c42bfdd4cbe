// Package flow owns the per-conversation packet accumulator and the feature
// extraction call that condenses one flow into a flat feature record.
package flow

import (
	"fmt"
	"time"

	"FlowSpectra/internal/features"
	"FlowSpectra/internal/model"
	"FlowSpectra/internal/stats"
)

// Flow accumulates the ordered (packet, direction) pairs of one bidirectional
// conversation. Packets are kept in arrival order; that order is the sole
// source of truth for the direction-transition detection in the response-time
// series.
type Flow struct {
	key             Key
	packets         []model.DirectedPacket
	latestTimestamp time.Time
}

// New creates a flow for the conversation opened by the given packet. The
// packet itself is not appended; callers add it with AddPacket like every
// other packet.
func New(pkt *model.PacketInfo, direction model.Direction) (*Flow, error) {
	key, err := NewKey(pkt.FiveTuple, direction)
	if err != nil {
		return nil, err
	}
	return &Flow{key: key}, nil
}

// Key returns the flow's direction-independent identity.
func (f *Flow) Key() Key {
	return f.key
}

// Packets returns the accumulated packet list in arrival order. The slice is
// shared with the flow; callers must not mutate it.
func (f *Flow) Packets() []model.DirectedPacket {
	return f.packets
}

// PacketCount returns the number of accumulated packets.
func (f *Flow) PacketCount() int {
	return len(f.packets)
}

// LatestTimestamp returns the highest packet timestamp seen so far. It is
// monotonically non-decreasing even if packets arrive with skewed clocks.
func (f *Flow) LatestTimestamp() time.Time {
	return f.latestTimestamp
}

// AddPacket appends a packet travelling in the given direction. The direction
// must already be resolved against the flow's Forward orientation; a value
// outside the two recognized variants is a caller bug and fails immediately.
func (f *Flow) AddPacket(pkt *model.PacketInfo, direction model.Direction) error {
	if !direction.Valid() {
		return fmt.Errorf("flow %s: invalid packet direction %v", f.key, direction)
	}
	f.packets = append(f.packets, model.DirectedPacket{Packet: pkt, Direction: direction})
	if pkt.Timestamp.After(f.latestTimestamp) {
		f.latestTimestamp = pkt.Timestamp
	}
	return nil
}

// ExtractFeatures condenses the flow into the full feature record. The call
// is read-only with respect to the packet list and is idempotent for every
// field except FlowDifferenceTimeGrandMean, which folds this flow's mean
// response time into the shared aggregator as a side effect.
func (f *Flow) ExtractFeatures(gm *stats.GrandMean) features.Record {
	responseTimes := features.ResponseTimes(f.packets)
	lengths := features.Lengths(f.packets)
	relTimes := features.RelativeTimes(f.packets)
	volume := features.NewVolume(f.packets)
	flags := features.CountFlags(f.packets)
	tls := features.SummarizeTLS(f.packets)

	grandMean := stats.Undefined
	if gm != nil {
		grandMean = gm.Fold(responseTimes.Mean())
	}

	return features.Record{
		"SourceIP":        f.key.SrcIP,
		"DestinationIP":   f.key.DstIP,
		"SourcePort":      f.key.SrcPort,
		"DestinationPort": f.key.DstPort,

		"ClientCipherSuit":         tls.ClientCipherSuites,
		"ServerCipherSuit":         tls.ServerCipherSuite,
		"ClientHelloMessageLength": tls.ClientHelloLength,
		"ServerHelloMessageLength": tls.ServerHelloLength,
		"Compression":              tls.Compression,
		"SessionLifetime":          tls.SessionLifetime,
		"Alpn":                     tls.ALPN,
		"Csr":                      tls.CSR,
		"KeyShareCH":               tls.KeyShare,
		"MasterSecret":             tls.MasterSecret,
		"OCSP":                     tls.OCSP,
		"Padding":                  tls.Padding,
		"PskKeyExch":               tls.PSKKeyExchange,
		"RecordSizeLimit":          tls.RecordSizeLimit,
		"Renegotiation":            tls.Renegotiation,
		"SessionTicket":            tls.SessionTicket,
		"SignatureAlgorithm":       tls.SignatureAlgs,
		"SupportedGroups":          tls.SupportedGroups,
		"SupportedPointFormat":     tls.PointFormats,
		"SupportedCh":              tls.SupportedVersion,

		"RelativeTimeList": features.RelativeTimeList(f.packets),
		"PacketSizeList":   features.SizeList(f.packets),
		"DirectionList":    features.DirectionList(f.packets),

		"TimeStamp": features.StartTime(f.packets).Format("2006-01-02 15:04:05"),
		"Duration":  features.Duration(f.packets),

		"FlowBytesSent":      volume.BytesSent,
		"FlowSentRate":       volume.SentRate(),
		"FlowBytesReceived":  volume.BytesReceived,
		"FlowReceivedRate":   volume.ReceivedRate(),
		"ForwardHeaderBytes": volume.ForwardHeaderBytes,
		"ReverseHeaderBytes": volume.ReverseHeaderBytes,
		"InitialTTL":         volume.InitialTTL,

		"PacketLengthVariance":               lengths.Variance(),
		"PacketLengthStandardDeviation":      lengths.Std(),
		"PacketLengthMean":                   lengths.Mean(),
		"PacketLengthMedian":                 lengths.Median(),
		"PacketLengthMode":                   lengths.Mode(),
		"PacketLengthSkewFromMedian":         lengths.SkewFromMedian(),
		"PacketLengthSkewFromMode":           lengths.SkewFromMode(),
		"PacketLengthCoefficientofVariation": lengths.CoefficientOfVariation(),

		"PacketTimeVariance":               relTimes.Variance(),
		"PacketTimeStandardDeviation":      relTimes.Std(),
		"PacketTimeMean":                   relTimes.Mean(),
		"PacketTimeMedian":                 relTimes.Median(),
		"PacketTimeMode":                   relTimes.Mode(),
		"PacketTimeSkewFromMedian":         relTimes.SkewFromMedian(),
		"PacketTimeSkewFromMode":           relTimes.SkewFromMode(),
		"PacketTimeCoefficientofVariation": relTimes.CoefficientOfVariation(),

		"FlowDifferenceTimeVariance":               responseTimes.Variance(),
		"FlowDifferenceTimeStandardDeviation":      responseTimes.Std(),
		"FlowDifferenceTimeMean":                   responseTimes.Mean(),
		"FlowDifferenceTimeMedian":                 responseTimes.Median(),
		"FlowDifferenceTimeMode":                   responseTimes.Mode(),
		"FlowDifferenceTimeSkewFromMedian":         responseTimes.SkewFromMedian(),
		"FlowDifferenceTimeSkewFromMode":           responseTimes.SkewFromMode(),
		"FlowDifferenceTimeCoefficientofVariation": responseTimes.CoefficientOfVariation(),
		"FlowDifferenceTimeGrandMean":              grandMean,

		"FlagTotal":        flags.Total,
		"NullFlagCount":    flags.Null,
		"PureFINCount":     flags.PureFIN,
		"EmbeddedFINCount": flags.EmbeddedFIN,
		"PureSYNCount":     flags.PureSYN,
		"EmbeddedSYNCount": flags.EmbeddedSYN,
		"PureRSTCount":     flags.PureRST,
		"EmbeddedRSTCount": flags.EmbeddedRST,
		"PurePSHCount":     flags.PurePSH,
		"EmbeddedPSHCount": flags.EmbeddedPSH,
		"PureACKCount":     flags.PureACK,
		"EmbeddedACKCount": flags.EmbeddedACK,
		"PureURGCount":     flags.PureURG,
		"EmbeddedURGCount": flags.EmbeddedURG,
		"PureECECount":     flags.PureECE,
		"EmbeddedECECount": flags.EmbeddedECE,
		"PureCWRCount":     flags.PureCWR,
		"EmbeddedCWRCount": flags.EmbeddedCWR,
		"RSTACKCount":      flags.RSTACK,
		"SYNACKCount":      flags.SYNACK,
		"PushACKCount":     flags.PushACK,
		"SynFinCount":      flags.SynFin,
		"EmbeddedSynFin":   flags.EmbeddedSynFin,
	}
}
