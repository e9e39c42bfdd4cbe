package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"FlowSpectra/internal/features"
)

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "features.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter failed: %v", err)
	}

	rec := features.Record{}
	for _, col := range features.Columns {
		rec[col] = 0.0
	}
	rec["SourceIP"] = "10.0.0.1"
	rec["SourcePort"] = uint16(49152)
	rec["FlowBytesSent"] = uint64(200)
	rec["Csr"] = true
	rec["PureSYNCount"] = 1
	rec["PacketSizeList"] = []int{60, 1500}
	rec["FlowDifferenceTimeMean"] = 0.2

	if err := w.WriteRecords([]features.Record{rec}); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output failed: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading output failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("output has %d rows, want header + 1", len(rows))
	}

	header := rows[0]
	if len(header) != len(features.Columns) {
		t.Fatalf("header has %d columns, want %d", len(header), len(features.Columns))
	}
	for i, col := range features.Columns {
		if header[i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], col)
		}
	}

	byName := make(map[string]string, len(header))
	for i, col := range header {
		byName[col] = rows[1][i]
	}
	if byName["SourceIP"] != "10.0.0.1" {
		t.Errorf("SourceIP = %q", byName["SourceIP"])
	}
	if byName["SourcePort"] != "49152" {
		t.Errorf("SourcePort = %q", byName["SourcePort"])
	}
	if byName["FlowBytesSent"] != "200" {
		t.Errorf("FlowBytesSent = %q", byName["FlowBytesSent"])
	}
	if byName["Csr"] != "true" {
		t.Errorf("Csr = %q", byName["Csr"])
	}
	if byName["PureSYNCount"] != "1" {
		t.Errorf("PureSYNCount = %q", byName["PureSYNCount"])
	}
	if byName["FlowDifferenceTimeMean"] != "0.2" {
		t.Errorf("FlowDifferenceTimeMean = %q", byName["FlowDifferenceTimeMean"])
	}
	if byName["PacketSizeList"] != "[60 1500]" {
		t.Errorf("PacketSizeList = %q", byName["PacketSizeList"])
	}
}
