package link

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitwire/uartlink/pkg/uart"
)

// step drives a single port looped back onto itself: whatever the
// transmitter puts on the line feeds the receiver one tick later.
func step(p *Port, level *bool, n int) {
	for i := 0; i < n; i++ {
		*level = p.Tick(*level)
	}
}

func TestPortLoopback(t *testing.T) {
	tm := uart.Timing{Prescale: 1}
	p, err := NewPort(tm)
	require.NoError(t, err)

	var got []byte
	p.SetHandler(HandleByteFunc(func(b byte) {
		got = append(got, b)
	}))

	p.Send(0x96, 0x01, 0xff)
	require.Equal(t, 3, p.Pending())

	level := true
	step(p, &level, 5*int(tm.FrameTicks()))

	require.Equal(t, []byte{0x96, 0x01, 0xff}, got)
	require.False(t, p.Busy())
	st := p.Stats()
	require.Equal(t, uint64(3), st.Sent)
	require.Equal(t, uint64(3), st.Received)
	require.Zero(t, st.Overruns)
	require.Zero(t, st.FrameErrors)
}

func TestPortWithoutHandlerReportsOverrun(t *testing.T) {
	tm := uart.Timing{Prescale: 1}
	p, err := NewPort(tm)
	require.NoError(t, err)

	p.Send(0x11, 0x22)
	level := true
	step(p, &level, 4*int(tm.FrameTicks()))

	st := p.Stats()
	require.Equal(t, uint64(2), st.Received)
	require.Equal(t, uint64(1), st.Overruns)

	// The newer byte survived.
	b, ok := p.Take()
	require.True(t, ok)
	require.Equal(t, byte(0x22), b)
}

func TestPortReset(t *testing.T) {
	p, err := NewPort(uart.Timing{Prescale: 1})
	require.NoError(t, err)
	p.Send(0x7e)
	level := true
	step(p, &level, 10)
	require.True(t, p.Busy())
	p.Reset()
	require.False(t, p.Busy())
	require.Zero(t, p.Pending())
	require.Equal(t, Stats{}, p.Stats())
}

func TestNewPortValidatesTiming(t *testing.T) {
	_, err := NewPort(uart.Timing{})
	require.Equal(t, uart.ErrZeroPrescale, err)
}
