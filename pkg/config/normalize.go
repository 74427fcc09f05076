package config

import "github.com/denisbrodbeck/machineid"

// Defaults applied by Normalize.
const (
	DefaultName     = "uart0"
	DefaultTickRate = 1000000
	DefaultFlushMs  = 20
)

// Normalize fills defaults. It is allowed to mutate configuration and
// MUST be called only after Validate.
func Normalize(cfg *Config) error {
	if cfg.Bridge.Name == "" {
		cfg.Bridge.Name = DefaultName
	}
	if cfg.Clock.TickRate == 0 {
		cfg.Clock.TickRate = DefaultTickRate
	}
	if cfg.Bridge.FlushMs == 0 {
		cfg.Bridge.FlushMs = DefaultFlushMs
	}
	if cfg.Bridge.Broker != "" && cfg.Bridge.ClientID == "" {
		id, err := machineid.ProtectedID("uartlink")
		if err != nil {
			return err
		}
		cfg.Bridge.ClientID = id
	}
	return nil
}
