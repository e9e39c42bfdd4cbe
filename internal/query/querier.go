// Package query serves aggregate questions over the persisted flow features.
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"FlowSpectra/internal/config"
	"FlowSpectra/internal/writer"
)

// SummaryRequest filters the flows included in a feature summary.
type SummaryRequest struct {
	SourceIP      string     `json:"source_ip,omitempty"`
	DestinationIP string     `json:"destination_ip,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
}

// SummaryResponse aggregates the matching flows.
type SummaryResponse struct {
	FlowCount         uint64  `json:"flow_count"`
	TotalBytesSent    uint64  `json:"total_bytes_sent"`
	TotalBytesRecv    uint64  `json:"total_bytes_received"`
	AvgDuration       float64 `json:"avg_duration"`
	AvgResponseTime   float64 `json:"avg_response_time"`
	MaxResponseTime   float64 `json:"max_response_time"`
	HandshakeFraction float64 `json:"handshake_fraction"`
}

// Querier answers aggregate questions over the flow feature store.
type Querier interface {
	SummarizeFlows(ctx context.Context, req *SummaryRequest) (*SummaryResponse, error)
}

type clickhouseQuerier struct {
	conn driver.Conn
}

// NewClickHouseQuerier creates a querier backed by the flow_features table.
func NewClickHouseQuerier(cfg config.ClickHouseConfig) (Querier, error) {
	conn, err := writer.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &clickhouseQuerier{conn: conn}, nil
}

// SummarizeFlows builds and executes a filtered aggregation query. Sentinel
// response times (flows without a measurable exchange) are excluded from the
// averages rather than dragging them negative.
func (q *clickhouseQuerier) SummarizeFlows(ctx context.Context, req *SummaryRequest) (*SummaryResponse, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			COUNT(*) AS FlowCount,
			SUM(FlowBytesSent) AS TotalBytesSent,
			SUM(FlowBytesReceived) AS TotalBytesRecv,
			AVG(Duration) AS AvgDuration,
			avgIf(FlowDifferenceTimeMean, FlowDifferenceTimeMean >= 0) AS AvgResponseTime,
			maxIf(FlowDifferenceTimeMean, FlowDifferenceTimeMean >= 0) AS MaxResponseTime,
			countIf(ClientCipherSuit != '') / COUNT(*) AS HandshakeFraction
		FROM flow_features
	`)

	var whereClauses []string
	args := []interface{}{}

	if req.SourceIP != "" {
		whereClauses = append(whereClauses, "SourceIP = ?")
		args = append(args, req.SourceIP)
	}
	if req.DestinationIP != "" {
		whereClauses = append(whereClauses, "DestinationIP = ?")
		args = append(args, req.DestinationIP)
	}
	if req.StartTime != nil {
		whereClauses = append(whereClauses, "Timestamp >= ?")
		args = append(args, *req.StartTime)
	}
	if req.EndTime != nil {
		whereClauses = append(whereClauses, "Timestamp <= ?")
		args = append(args, *req.EndTime)
	}
	if len(whereClauses) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(whereClauses, " AND "))
	}

	row := q.conn.QueryRow(ctx, queryBuilder.String(), args...)

	var resp SummaryResponse
	if err := row.Scan(
		&resp.FlowCount,
		&resp.TotalBytesSent,
		&resp.TotalBytesRecv,
		&resp.AvgDuration,
		&resp.AvgResponseTime,
		&resp.MaxResponseTime,
		&resp.HandshakeFraction,
	); err != nil {
		return nil, fmt.Errorf("failed to scan summary row: %w", err)
	}

	return &resp, nil
}
