package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"FlowSpectra/internal/config"
	"FlowSpectra/internal/engine"
	"FlowSpectra/internal/model"
	"FlowSpectra/internal/probe"
	"FlowSpectra/internal/writer"
)

func main() {
	log.Println("Starting fs-engine...")

	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	var writers []engine.Writer
	if cfg.Writers.CSV.Enabled {
		csvWriter, err := writer.NewCSVWriter(cfg.Writers.CSV.Path)
		if err != nil {
			log.Fatalf("Failed to create CSV writer: %v", err)
		}
		writers = append(writers, csvWriter)
	}
	if cfg.Writers.ClickHouse.Enabled {
		chWriter, err := writer.NewClickHouseWriter(cfg.Writers.ClickHouse)
		if err != nil {
			log.Fatalf("Failed to create ClickHouse writer: %v", err)
		}
		writers = append(writers, chWriter)
	}
	if len(writers) == 0 {
		log.Fatal("No writers enabled in config; nothing to do.")
	}

	eng, err := engine.New(cfg, writers)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	eng.Start()

	subscriber, err := probe.NewSubscriber(cfg.Probe)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}
	if err := subscriber.Start(func(info *model.PacketInfo) {
		eng.Input() <- info
	}); err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutdown signal received, stopping...")
	subscriber.Close()
	eng.Stop()
	log.Println("Shutdown complete.")
}
