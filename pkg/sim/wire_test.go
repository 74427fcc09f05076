package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitwire/uartlink/pkg/link"
	"github.com/bitwire/uartlink/pkg/uart"
)

func TestWireFullDuplex(t *testing.T) {
	tm := uart.Timing{Prescale: 1}
	a, err := link.NewPort(tm)
	require.NoError(t, err)
	b, err := link.NewPort(tm)
	require.NoError(t, err)

	var atB, atA []byte
	b.SetHandler(link.HandleByteFunc(func(by byte) { atB = append(atB, by) }))
	a.SetHandler(link.HandleByteFunc(func(by byte) { atA = append(atA, by) }))

	clock := NewClock().Add(NewWire(a, b))

	// Both directions at once over the crossed lines.
	a.Send(0xde, 0xad)
	b.Send(0xbe, 0xef)
	clock.Step(4 * int(tm.FrameTicks()))

	require.Equal(t, []byte{0xde, 0xad}, atB)
	require.Equal(t, []byte{0xbe, 0xef}, atA)
	require.False(t, a.Busy())
	require.False(t, b.Busy())
	require.Zero(t, a.Stats().FrameErrors)
	require.Zero(t, b.Stats().FrameErrors)
}

func TestWireEcho(t *testing.T) {
	tm := uart.Timing{Prescale: 2}
	near, err := link.NewPort(tm)
	require.NoError(t, err)
	far, err := link.NewPort(tm)
	require.NoError(t, err)

	// The far port echoes everything back.
	far.SetHandler(link.HandleByteFunc(func(by byte) { far.Send(by) }))
	var got []byte
	near.SetHandler(link.HandleByteFunc(func(by byte) { got = append(got, by) }))

	clock := NewClock().Add(NewWire(near, far))
	near.Send(0x96, 0x55, 0x00, 0xff)
	clock.Step(12 * int(tm.FrameTicks()))

	require.Equal(t, []byte{0x96, 0x55, 0x00, 0xff}, got)
}

func TestWireIdle(t *testing.T) {
	tm := uart.Timing{Prescale: 1}
	a, err := link.NewPort(tm)
	require.NoError(t, err)
	b, err := link.NewPort(tm)
	require.NoError(t, err)
	w := NewWire(a, b)
	for i := 0; i < 1000; i++ {
		w.Tick()
		require.True(t, w.LevelA())
		require.True(t, w.LevelB())
	}
	require.Equal(t, link.Stats{}, a.Stats())
	require.Equal(t, link.Stats{}, b.Stats())
}
