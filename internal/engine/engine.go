// Package engine runs the flow feature pipeline: a worker pool classifies
// packets into a sharded flow table, a flusher evicts idle flows, extracts
// their feature records and hands them to the configured writers.
package engine

import (
	"log"
	"sync"
	"time"

	"FlowSpectra/internal/config"
	"FlowSpectra/internal/features"
	"FlowSpectra/internal/model"
	"FlowSpectra/internal/stats"
)

// Writer persists a batch of flow feature records. Implementations live in
// internal/writer; the engine only fans flushed records out to them.
type Writer interface {
	WriteRecords(records []features.Record) error
	Close() error
}

// Engine owns the flow table, the shared grand-mean aggregator and the
// processing goroutines.
type Engine struct {
	table   *FlowTable
	gm      *stats.GrandMean
	writers []Writer

	packetChannel chan *model.PacketInfo
	numWorkers    int
	flushInterval time.Duration
	flowTimeout   time.Duration

	workerWg  sync.WaitGroup
	flusherWg sync.WaitGroup
	done      chan struct{}
}

// New creates an engine from the aggregator configuration. The grand-mean
// aggregator is engine-scoped: every flow this engine flushes folds into the
// same one.
func New(cfg *config.Config, writers []Writer) (*Engine, error) {
	aggCfg := cfg.Aggregator

	flushInterval, err := aggCfg.FlushIntervalDuration()
	if err != nil {
		return nil, err
	}
	flowTimeout, err := aggCfg.FlowTimeoutDuration()
	if err != nil {
		return nil, err
	}

	return &Engine{
		table:         NewFlowTable(aggCfg.NumShards),
		gm:            stats.NewGrandMean(),
		writers:       writers,
		packetChannel: make(chan *model.PacketInfo, aggCfg.SizeOfPacketChannel),
		numWorkers:    aggCfg.NumWorkers,
		flushInterval: flushInterval,
		flowTimeout:   flowTimeout,
		done:          make(chan struct{}),
	}, nil
}

// Input returns the channel packets are fed into.
func (e *Engine) Input() chan<- *model.PacketInfo {
	return e.packetChannel
}

// GrandMean exposes the engine-scoped cumulative aggregator, e.g. for a
// stats endpoint.
func (e *Engine) GrandMean() *stats.GrandMean {
	return e.gm
}

// ActiveFlows returns the current number of unflushed flows.
func (e *Engine) ActiveFlows() int {
	return e.table.Len()
}

// Start launches the packet workers and the flusher.
func (e *Engine) Start() {
	e.workerWg.Add(e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		go e.worker()
	}

	e.flusherWg.Add(1)
	go e.flusher()

	log.Printf("Engine started with %d workers, flush interval %s, flow timeout %s.",
		e.numWorkers, e.flushInterval, e.flowTimeout)
}

// Stop drains the packet channel, stops the flusher and flushes every
// remaining flow to the writers.
func (e *Engine) Stop() {
	close(e.packetChannel)
	e.workerWg.Wait()

	close(e.done)
	e.flusherWg.Wait()

	// Final flush: evict everything that is still active.
	e.flush(0)

	for _, w := range e.writers {
		if err := w.Close(); err != nil {
			log.Printf("Error closing writer: %v", err)
		}
	}
	log.Println("Engine stopped.")
}

func (e *Engine) worker() {
	defer e.workerWg.Done()
	for pkt := range e.packetChannel {
		if err := e.table.Add(pkt); err != nil {
			log.Printf("Error adding packet to flow table: %v", err)
		}
	}
}

func (e *Engine) flusher() {
	defer e.flusherWg.Done()
	ticker := time.NewTicker(e.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.flush(e.flowTimeout)
		case <-e.done:
			return
		}
	}
}

// flush evicts idle flows, extracts their features and writes the batch.
func (e *Engine) flush(timeout time.Duration) {
	flushed := e.table.FlushIdle(timeout, time.Now())
	if len(flushed) == 0 {
		return
	}

	records := make([]features.Record, 0, len(flushed))
	for _, fl := range flushed {
		records = append(records, fl.ExtractFeatures(e.gm))
	}

	for _, w := range e.writers {
		if err := w.WriteRecords(records); err != nil {
			log.Printf("Error writing %d feature records: %v", len(records), err)
		}
	}
}
