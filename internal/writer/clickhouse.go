package writer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"FlowSpectra/internal/config"
	"FlowSpectra/internal/features"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS flow_features (
    Timestamp                                DateTime,
    SourceIP                                 String,
    DestinationIP                            String,
    SourcePort                               UInt16,
    DestinationPort                          UInt16,
    Duration                                 Float64,
    FlowBytesSent                            UInt64,
    FlowBytesReceived                        UInt64,
    FlowSentRate                             Float64,
    FlowReceivedRate                         Float64,
    ClientCipherSuit                         String,
    ServerCipherSuit                         String,
    Alpn                                     String,
    PacketLengthMean                         Float64,
    PacketLengthVariance                     Float64,
    PacketLengthStandardDeviation            Float64,
    PacketTimeMean                           Float64,
    PacketTimeVariance                       Float64,
    PacketTimeStandardDeviation              Float64,
    FlowDifferenceTimeMean                   Float64,
    FlowDifferenceTimeVariance               Float64,
    FlowDifferenceTimeStandardDeviation      Float64,
    FlowDifferenceTimeMedian                 Float64,
    FlowDifferenceTimeMode                   Float64,
    FlowDifferenceTimeSkewFromMedian         Float64,
    FlowDifferenceTimeSkewFromMode           Float64,
    FlowDifferenceTimeCoefficientofVariation Float64,
    FlowDifferenceTimeGrandMean              Float64,
    FlagTotal                                Int32,
    SYNACKCount                              Int32,
    RSTACKCount                              Int32
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (SourceIP, DestinationIP, Timestamp);
`

const insertStatement = `INSERT INTO flow_features (
	Timestamp, SourceIP, DestinationIP, SourcePort, DestinationPort,
	Duration, FlowBytesSent, FlowBytesReceived, FlowSentRate, FlowReceivedRate,
	ClientCipherSuit, ServerCipherSuit, Alpn,
	PacketLengthMean, PacketLengthVariance, PacketLengthStandardDeviation,
	PacketTimeMean, PacketTimeVariance, PacketTimeStandardDeviation,
	FlowDifferenceTimeMean, FlowDifferenceTimeVariance, FlowDifferenceTimeStandardDeviation,
	FlowDifferenceTimeMedian, FlowDifferenceTimeMode,
	FlowDifferenceTimeSkewFromMedian, FlowDifferenceTimeSkewFromMode,
	FlowDifferenceTimeCoefficientofVariation, FlowDifferenceTimeGrandMean,
	FlagTotal, SYNACKCount, RSTACKCount
)`

// ClickHouseWriter persists the scalar core of each feature record to the
// flow_features table. The raw head-of-flow lists stay in the CSV output;
// the query API only needs the scalar columns.
type ClickHouseWriter struct {
	conn driver.Conn
}

// NewClickHouseWriter connects to ClickHouse and ensures the table exists.
func NewClickHouseWriter(cfg config.ClickHouseConfig) (*ClickHouseWriter, error) {
	conn, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	if err := conn.Exec(context.Background(), createTableStatement); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	log.Println("Successfully connected to ClickHouse and ensured table exists.")

	return &ClickHouseWriter{conn: conn}, nil
}

// Connect opens a ClickHouse connection with the defaults shared by the
// writer and the querier.
func Connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}
	return conn, nil
}

// WriteRecords inserts one batch of feature records.
func (w *ClickHouseWriter) WriteRecords(records []features.Record) error {
	if len(records) == 0 {
		return nil
	}
	ctx := context.Background()

	batch, err := w.conn.PrepareBatch(ctx, insertStatement)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	now := time.Now()
	for _, rec := range records {
		err := batch.Append(
			now,
			asString(rec["SourceIP"]),
			asString(rec["DestinationIP"]),
			asUint16(rec["SourcePort"]),
			asUint16(rec["DestinationPort"]),
			asFloat(rec["Duration"]),
			asUint64(rec["FlowBytesSent"]),
			asUint64(rec["FlowBytesReceived"]),
			asFloat(rec["FlowSentRate"]),
			asFloat(rec["FlowReceivedRate"]),
			asString(rec["ClientCipherSuit"]),
			asString(rec["ServerCipherSuit"]),
			asString(rec["Alpn"]),
			asFloat(rec["PacketLengthMean"]),
			asFloat(rec["PacketLengthVariance"]),
			asFloat(rec["PacketLengthStandardDeviation"]),
			asFloat(rec["PacketTimeMean"]),
			asFloat(rec["PacketTimeVariance"]),
			asFloat(rec["PacketTimeStandardDeviation"]),
			asFloat(rec["FlowDifferenceTimeMean"]),
			asFloat(rec["FlowDifferenceTimeVariance"]),
			asFloat(rec["FlowDifferenceTimeStandardDeviation"]),
			asFloat(rec["FlowDifferenceTimeMedian"]),
			asFloat(rec["FlowDifferenceTimeMode"]),
			asFloat(rec["FlowDifferenceTimeSkewFromMedian"]),
			asFloat(rec["FlowDifferenceTimeSkewFromMode"]),
			asFloat(rec["FlowDifferenceTimeCoefficientofVariation"]),
			asFloat(rec["FlowDifferenceTimeGrandMean"]),
			asInt32(rec["FlagTotal"]),
			asInt32(rec["SYNACKCount"]),
			asInt32(rec["RSTACKCount"]),
		)
		if err != nil {
			return fmt.Errorf("failed to append record: %w", err)
		}
	}

	return batch.Send()
}

// Close closes the underlying connection.
func (w *ClickHouseWriter) Close() error {
	return w.conn.Close()
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func asUint16(v any) uint16 {
	u, _ := v.(uint16)
	return u
}

func asUint64(v any) uint64 {
	u, _ := v.(uint64)
	return u
}

func asInt32(v any) int32 {
	n, _ := v.(int)
	return int32(n)
}
