package features

// Record is the flat per-flow feature mapping handed to writers. Keys are
// exactly the names in Columns; values are the types produced by the feature
// groups (float64, int, uint64, bool, string, or a raw list).
type Record map[string]any

// Columns is the canonical field order of a feature record. Writers emit
// fields in this order and tests validate that every extracted record covers
// it exactly. The timing-difference statistics are the contract other feature
// groups follow; keep their names stable.
var Columns = []string{
	// Flow identity
	"SourceIP",
	"DestinationIP",
	"SourcePort",
	"DestinationPort",

	// TLS handshake
	"ClientCipherSuit",
	"ServerCipherSuit",
	"ClientHelloMessageLength",
	"ServerHelloMessageLength",
	"Compression",
	"SessionLifetime",
	"Alpn",
	"Csr",
	"KeyShareCH",
	"MasterSecret",
	"OCSP",
	"Padding",
	"PskKeyExch",
	"RecordSizeLimit",
	"Renegotiation",
	"SessionTicket",
	"SignatureAlgorithm",
	"SupportedGroups",
	"SupportedPointFormat",
	"SupportedCh",

	// Head-of-flow lists
	"RelativeTimeList",
	"PacketSizeList",
	"DirectionList",

	// Packet times
	"TimeStamp",
	"Duration",

	// Byte volume
	"FlowBytesSent",
	"FlowSentRate",
	"FlowBytesReceived",
	"FlowReceivedRate",
	"ForwardHeaderBytes",
	"ReverseHeaderBytes",
	"InitialTTL",

	// Packet length statistics
	"PacketLengthVariance",
	"PacketLengthStandardDeviation",
	"PacketLengthMean",
	"PacketLengthMedian",
	"PacketLengthMode",
	"PacketLengthSkewFromMedian",
	"PacketLengthSkewFromMode",
	"PacketLengthCoefficientofVariation",

	// Packet time statistics
	"PacketTimeVariance",
	"PacketTimeStandardDeviation",
	"PacketTimeMean",
	"PacketTimeMedian",
	"PacketTimeMode",
	"PacketTimeSkewFromMedian",
	"PacketTimeSkewFromMode",
	"PacketTimeCoefficientofVariation",

	// Response time statistics
	"FlowDifferenceTimeVariance",
	"FlowDifferenceTimeStandardDeviation",
	"FlowDifferenceTimeMean",
	"FlowDifferenceTimeMedian",
	"FlowDifferenceTimeMode",
	"FlowDifferenceTimeSkewFromMedian",
	"FlowDifferenceTimeSkewFromMode",
	"FlowDifferenceTimeCoefficientofVariation",
	"FlowDifferenceTimeGrandMean",

	// TCP flags
	"FlagTotal",
	"NullFlagCount",
	"PureFINCount",
	"EmbeddedFINCount",
	"PureSYNCount",
	"EmbeddedSYNCount",
	"PureRSTCount",
	"EmbeddedRSTCount",
	"PurePSHCount",
	"EmbeddedPSHCount",
	"PureACKCount",
	"EmbeddedACKCount",
	"PureURGCount",
	"EmbeddedURGCount",
	"PureECECount",
	"EmbeddedECECount",
	"PureCWRCount",
	"EmbeddedCWRCount",
	"RSTACKCount",
	"SYNACKCount",
	"PushACKCount",
	"SynFinCount",
	"EmbeddedSynFin",
}

// StatefulColumns names the record fields whose value depends on shared
// aggregator state rather than on the flow alone. Extracting features twice
// from the same flow yields identical values for every other column.
var StatefulColumns = []string{
	"FlowDifferenceTimeGrandMean",
}
