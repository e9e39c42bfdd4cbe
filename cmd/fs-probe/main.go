package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"FlowSpectra/internal/config"
	"FlowSpectra/internal/model"
	"FlowSpectra/internal/probe"
	"FlowSpectra/pkg/pcap"
)

const snapshotLen int32 = 1600

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file.")
	iface := flag.String("iface", "", "Interface to capture packets from.")
	file := flag.String("file", "", "Pcap file to replay instead of live capture.")
	flag.Parse()

	if *iface == "" && *file == "" {
		log.Fatal("Either -iface or -file must be given.")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	publisher, err := probe.NewPublisher(cfg.Probe)
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	var reader *pcap.Reader
	if *file != "" {
		reader, err = pcap.NewReader(*file)
	} else {
		reader, err = pcap.NewLiveReader(*iface, snapshotLen)
	}
	if err != nil {
		log.Fatalf("Failed to open capture source: %v", err)
	}
	defer reader.Close()

	packetChannel := make(chan *model.PacketInfo, 1000)
	go func() {
		reader.ReadPackets(packetChannel)
		close(packetChannel)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	published := 0
	for {
		select {
		case info, ok := <-packetChannel:
			if !ok {
				log.Printf("Capture source exhausted, published %d packets.", published)
				return
			}
			if err := publisher.Publish(info); err != nil {
				log.Printf("Error publishing packet: %v", err)
				continue
			}
			published++
		case <-sigChan:
			log.Printf("Shutdown signal received, published %d packets.", published)
			return
		}
	}
}
