package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/baxromumarov/conduit"
	"github.com/rs/zerolog"
)

// Scenario describes one load run.
type Scenario struct {
	Mode        conduit.Mode
	Capacity    int
	Producers   int
	Consumers   int
	Items       int     // per producer
	Rate        float64 // sends per second per producer, 0 for unlimited
	MaxRunning  int     // producers running at once, 0 for all
	CopyOnSend  bool
	LogLevel    zerolog.Level
	Timeout     time.Duration
	MetricsAddr string
	Linger      time.Duration
}

type fileConfig struct {
	Mode        string  `toml:"mode"`
	Capacity    int     `toml:"capacity"`
	Producers   int     `toml:"producers"`
	Consumers   int     `toml:"consumers"`
	Items       int     `toml:"items"`
	Rate        float64 `toml:"rate"`
	MaxRunning  int     `toml:"max_running"`
	CopyOnSend  bool    `toml:"copy_on_send"`
	LogLevel    string  `toml:"log_level"`
	Timeout     string  `toml:"timeout"`
	MetricsAddr string  `toml:"metrics_addr"`
	Linger      string  `toml:"linger"`
}

// DefaultScenario is a small work-queue run.
func DefaultScenario() Scenario {
	return Scenario{
		Mode:      conduit.ModeQueue,
		Capacity:  16,
		Producers: 2,
		Consumers: 2,
		Items:     1000,
		LogLevel:  zerolog.InfoLevel,
		Timeout:   30 * time.Second,
	}
}

func loadScenario(path string) (Scenario, error) {
	sc := DefaultScenario()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("load scenario: %w", err)
	}

	if meta.IsDefined("mode") {
		m, err := parseMode(raw.Mode)
		if err != nil {
			return Scenario{}, err
		}
		sc.Mode = m
	}
	if meta.IsDefined("capacity") {
		sc.Capacity = raw.Capacity
	}
	if meta.IsDefined("producers") {
		sc.Producers = raw.Producers
	}
	if meta.IsDefined("consumers") {
		sc.Consumers = raw.Consumers
	}
	if meta.IsDefined("items") {
		sc.Items = raw.Items
	}
	if meta.IsDefined("rate") {
		sc.Rate = raw.Rate
	}
	if meta.IsDefined("max_running") {
		sc.MaxRunning = raw.MaxRunning
	}
	if meta.IsDefined("copy_on_send") {
		sc.CopyOnSend = raw.CopyOnSend
	}
	if meta.IsDefined("log_level") {
		lvl, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return Scenario{}, fmt.Errorf("parse log_level: %w", err)
		}
		sc.LogLevel = lvl
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Scenario{}, fmt.Errorf("parse timeout: %w", err)
		}
		sc.Timeout = d
	}
	if meta.IsDefined("metrics_addr") {
		sc.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("linger") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Linger))
		if err != nil {
			return Scenario{}, fmt.Errorf("parse linger: %w", err)
		}
		sc.Linger = d
	}

	if err := sc.validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func parseMode(raw string) (conduit.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "queue", "work-queue":
		return conduit.ModeQueue, nil
	case "broadcast":
		return conduit.ModeBroadcast, nil
	case "rendezvous":
		return conduit.ModeRendezvous, nil
	default:
		return conduit.ModeUnknown, fmt.Errorf("parse mode: unknown mode %q", raw)
	}
}

func (sc Scenario) validate() error {
	switch {
	case sc.Producers < 1:
		return fmt.Errorf("invalid scenario: producers must be positive, got %d", sc.Producers)
	case sc.Consumers < 1:
		return fmt.Errorf("invalid scenario: consumers must be positive, got %d", sc.Consumers)
	case sc.Items < 0:
		return fmt.Errorf("invalid scenario: items must be non-negative, got %d", sc.Items)
	case sc.Mode == conduit.ModeQueue && sc.Capacity < 1:
		return fmt.Errorf("invalid scenario: queue capacity must be positive, got %d", sc.Capacity)
	case sc.Rate < 0:
		return fmt.Errorf("invalid scenario: rate must be non-negative, got %g", sc.Rate)
	case sc.MaxRunning < 0:
		return fmt.Errorf("invalid scenario: max_running must be non-negative, got %d", sc.MaxRunning)
	case sc.Timeout <= 0:
		return fmt.Errorf("invalid scenario: timeout must be positive, got %s", sc.Timeout)
	}
	return nil
}

// options translates the scenario into channel construction arguments.
func (sc Scenario) options() (int, []conduit.Option) {
	var opts []conduit.Option
	capacity := sc.Capacity
	switch sc.Mode {
	case conduit.ModeBroadcast:
		opts = append(opts, conduit.WithBroadcast())
	case conduit.ModeRendezvous:
		capacity = 0
	}
	if sc.CopyOnSend {
		opts = append(opts, conduit.WithCopyOnSend())
	}
	return capacity, opts
}
