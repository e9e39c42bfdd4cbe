package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AggregatorConfig holds the configuration for the flow engine.
type AggregatorConfig struct {
	NumWorkers          int    `yaml:"num_workers"`
	SizeOfPacketChannel int    `yaml:"size_of_packet_channel"`
	NumShards           uint32 `yaml:"num_shards"`
	FlushInterval       string `yaml:"flush_interval"`
	FlowTimeout         string `yaml:"flow_timeout"`
}

// FlushIntervalDuration parses the flush interval.
func (c AggregatorConfig) FlushIntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.FlushInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid flush_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("flush_interval must be a positive duration")
	}
	return d, nil
}

// FlowTimeoutDuration parses the flow idle timeout.
func (c AggregatorConfig) FlowTimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.FlowTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid flow_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("flow_timeout must be a positive duration")
	}
	return d, nil
}

// CSVConfig configures the CSV feature writer.
type CSVConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ClickHouseConfig configures the ClickHouse feature writer and querier.
type ClickHouseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// WritersConfig groups the available feature writers.
type WritersConfig struct {
	CSV        CSVConfig        `yaml:"csv"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
}

// ProbeConfig configures the NATS packet transport.
type ProbeConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// APIConfig configures the HTTP query server.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Aggregator AggregatorConfig `yaml:"aggregator"`
	Writers    WritersConfig    `yaml:"writers"`
	Probe      ProbeConfig      `yaml:"probe"`
	API        APIConfig        `yaml:"api"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return &cfg, nil
}
