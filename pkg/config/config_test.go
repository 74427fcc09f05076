package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
link:
  prescale: 4
clock:
  tick_rate: 500000
bridge:
  broker: mqtt://broker:1883/links
  name: bench
  client_id: bench-bridge
  flush_ms: 5
`))
	require.NoError(t, err)
	require.Equal(t, uint32(4), cfg.Link.Prescale)
	require.Equal(t, 500000, cfg.Clock.TickRate)
	require.Equal(t, "mqtt://broker:1883/links", cfg.Bridge.Broker)
	require.Equal(t, "bench", cfg.Bridge.Name)
	require.Equal(t, "bench-bridge", cfg.Bridge.ClientID)
	require.Equal(t, 5, cfg.Bridge.FlushMs)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("link:\n  prescale: 1\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultName, cfg.Bridge.Name)
	require.Equal(t, DefaultTickRate, cfg.Clock.TickRate)
	require.Equal(t, DefaultFlushMs, cfg.Bridge.FlushMs)
	require.Empty(t, cfg.Bridge.Broker)
	// No broker, no client identity needed.
	require.Empty(t, cfg.Bridge.ClientID)
}

func TestParseRejects(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"zero prescale", "link:\n  prescale: 0\n"},
		{"missing prescale", "clock:\n  tick_rate: 1\n"},
		{"negative tick rate", "link:\n  prescale: 1\nclock:\n  tick_rate: -1\n"},
		{"negative flush", "link:\n  prescale: 1\nbridge:\n  flush_ms: -1\n"},
		{"bad name", "link:\n  prescale: 1\nbridge:\n  name: a/b\n"},
		{"bad yaml", "link: [\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
		})
	}
}
