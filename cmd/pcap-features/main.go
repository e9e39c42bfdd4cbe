package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"FlowSpectra/internal/config"
	"FlowSpectra/internal/engine"
	"FlowSpectra/internal/writer"
	"FlowSpectra/pkg/pcap"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	output := flag.String("o", "", "Override the CSV output path.")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: pcap-features [-config configs/config.yaml] [-o out.csv] <path_to_pcap_file>")
		os.Exit(1)
	}
	pcapFilePath := flag.Arg(0)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	csvPath := cfg.Writers.CSV.Path
	if *output != "" {
		csvPath = *output
	}
	csvWriter, err := writer.NewCSVWriter(csvPath)
	if err != nil {
		log.Fatalf("Failed to create CSV writer: %v", err)
	}

	writers := []engine.Writer{csvWriter}
	if cfg.Writers.ClickHouse.Enabled {
		chWriter, err := writer.NewClickHouseWriter(cfg.Writers.ClickHouse)
		if err != nil {
			log.Fatalf("Failed to create ClickHouse writer: %v", err)
		}
		writers = append(writers, chWriter)
	}

	eng, err := engine.New(cfg, writers)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	reader, err := pcap.NewReader(pcapFilePath)
	if err != nil {
		log.Fatalf("Failed to open pcap file: %v", err)
	}
	defer reader.Close()
	log.Printf("Reading packets from '%s'...", pcapFilePath)

	eng.Start()
	reader.ReadPackets(eng.Input())
	log.Println("Finished reading all packets from pcap file.")

	eng.Stop()
	log.Printf("Feature records written to '%s'.", csvPath)
}
