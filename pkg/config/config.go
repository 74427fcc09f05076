// Package config loads the YAML configuration for the bridge binary.
package config

import (
	"io/ioutil"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Link   LinkConfig   `yaml:"link"`
	Clock  ClockConfig  `yaml:"clock"`
	Bridge BridgeConfig `yaml:"bridge"`
}

// ---- LINK ----

type LinkConfig struct {
	// Prescale sets the bit period to prescale*8 clock ticks. It must
	// match on both ends of a link; this end cannot detect a mismatch.
	Prescale uint32 `yaml:"prescale"`
}

// ---- CLOCK ----

type ClockConfig struct {
	// TickRate is simulated clock ticks per second of wall time.
	TickRate int `yaml:"tick_rate"`
}

// ---- BRIDGE ----

type BridgeConfig struct {
	// Broker is an MQTT URL (mqtt://host:port/prefix). Empty selects
	// the stdio stream transport instead.
	Broker string `yaml:"broker"`
	// Name is the link name used as MQTT topic prefix: bytes to
	// transmit arrive on NAME/tx, decoded bytes leave on NAME/rx.
	Name string `yaml:"name"`
	// ClientID identifies this bridge to the broker. Defaults to an
	// ID derived from the machine.
	ClientID string `yaml:"client_id"`
	// FlushMs batches decoded bytes for this many milliseconds before
	// publishing.
	FlushMs int `yaml:"flush_ms"`
}

// Load reads, parses, validates and normalizes a configuration file.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
