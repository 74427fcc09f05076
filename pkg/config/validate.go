package config

import (
	"fmt"
	"strings"

	"github.com/bitwire/uartlink/pkg/uart"
)

// Validate checks configuration correctness. It performs declarative
// validation only and MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if err := (uart.Timing{Prescale: cfg.Link.Prescale}).Validate(); err != nil {
		return fmt.Errorf("link: %v", err)
	}
	if cfg.Clock.TickRate < 0 {
		return fmt.Errorf("clock: tick_rate must not be negative")
	}
	if cfg.Bridge.FlushMs < 0 {
		return fmt.Errorf("bridge: flush_ms must not be negative")
	}
	if strings.ContainsAny(cfg.Bridge.Name, "+#/") {
		return fmt.Errorf("bridge: name %q must not contain MQTT topic characters", cfg.Bridge.Name)
	}
	return nil
}
