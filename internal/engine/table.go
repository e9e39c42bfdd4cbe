package engine

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"FlowSpectra/internal/flow"
	"FlowSpectra/internal/model"
)

const defaultShardCount = 256

// tableShard is one partition of the flow table with its own lock.
type tableShard struct {
	mu    sync.Mutex
	flows map[string]*flowEntry
}

// flowEntry keeps the flow together with the tuple orientation of its first
// packet, which later packets are classified against.
type flowEntry struct {
	flow    *flow.Flow
	forward model.FiveTuple
}

// FlowTable buckets packets into bidirectional flows using a sharded map.
// Both orientations of a conversation land in the same bucket; the first
// packet seen for a conversation defines its Forward direction.
type FlowTable struct {
	shards     []*tableShard
	shardCount uint32
}

// NewFlowTable creates a sharded flow table.
func NewFlowTable(numShards uint32) *FlowTable {
	if numShards == 0 || numShards >= 32768 {
		numShards = defaultShardCount
	}
	t := &FlowTable{
		shards:     make([]*tableShard, numShards),
		shardCount: numShards,
	}
	for i := range t.shards {
		t.shards[i] = &tableShard{flows: make(map[string]*flowEntry)}
	}
	return t
}

// canonicalKey renders a direction-independent bucket key by ordering the two
// endpoints lexicographically. Shard selection must not depend on which
// endpoint sent the packet.
func canonicalKey(ft model.FiveTuple) string {
	a := fmt.Sprintf("%s:%d", ft.SrcIP, ft.SrcPort)
	b := fmt.Sprintf("%s:%d", ft.DstIP, ft.DstPort)
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%s-%s-%d", a, b, ft.Protocol)
}

func (t *FlowTable) getShard(key string) *tableShard {
	hasher := fnv.New32a()
	hasher.Write([]byte(key))
	return t.shards[hasher.Sum32()%t.shardCount]
}

func sameOrientation(a, b model.FiveTuple) bool {
	return a.SrcIP.Equal(b.SrcIP) && a.DstIP.Equal(b.DstIP) &&
		a.SrcPort == b.SrcPort && a.DstPort == b.DstPort
}

// Add classifies the packet into its flow, creating the flow if this is the
// first packet of the conversation, and appends it with the resolved
// direction.
func (t *FlowTable) Add(pkt *model.PacketInfo) error {
	key := canonicalKey(pkt.FiveTuple)
	shard := t.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, ok := shard.flows[key]
	if !ok {
		fl, err := flow.New(pkt, model.Forward)
		if err != nil {
			return err
		}
		entry = &flowEntry{flow: fl, forward: pkt.FiveTuple}
		shard.flows[key] = entry
	}

	direction := model.Forward
	if !sameOrientation(entry.forward, pkt.FiveTuple) {
		direction = model.Reverse
	}
	return entry.flow.AddPacket(pkt, direction)
}

// FlushIdle removes and returns every flow whose latest packet is older than
// the timeout. A timeout of zero (or less) evicts everything; the engine uses
// that for the final flush on shutdown.
func (t *FlowTable) FlushIdle(timeout time.Duration, now time.Time) []*flow.Flow {
	var flushed []*flow.Flow
	for _, shard := range t.shards {
		shard.mu.Lock()
		for key, entry := range shard.flows {
			if timeout <= 0 || now.Sub(entry.flow.LatestTimestamp()) > timeout {
				flushed = append(flushed, entry.flow)
				delete(shard.flows, key)
			}
		}
		shard.mu.Unlock()
	}
	return flushed
}

// Len returns the number of active flows across all shards.
func (t *FlowTable) Len() int {
	count := 0
	for _, shard := range t.shards {
		shard.mu.Lock()
		count += len(shard.flows)
		shard.mu.Unlock()
	}
	return count
}
