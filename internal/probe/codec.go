// Package probe moves parsed packet metadata between a capture probe and the
// engine over NATS.
package probe

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"FlowSpectra/internal/model"
)

// Encode serializes a PacketInfo for the wire.
func Encode(info *model.PacketInfo) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(info); err != nil {
		return nil, fmt.Errorf("failed to encode packet info: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode deserializes a PacketInfo from the wire.
func Decode(data []byte) (*model.PacketInfo, error) {
	var info model.PacketInfo
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode packet info: %w", err)
	}
	return &info, nil
}
