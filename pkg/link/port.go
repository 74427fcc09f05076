package link

import (
	"sync"

	"github.com/bitwire/uartlink/pkg/uart"
)

// Stats counts traffic and anomalies seen by a Port.
type Stats struct {
	Sent        uint64 `json:"sent"`
	Received    uint64 `json:"received"`
	Overruns    uint64 `json:"overruns"`
	FrameErrors uint64 `json:"frame_errors"`
}

// Port is a full-duplex byte endpoint: one Transmitter and one
// Receiver sharing a Timing. The engine itself holds at most one byte
// per direction; the Port adds the outbound queue and the always-ready
// consumer that software endpoints expect.
//
// Send may be called from any goroutine. Tick must be called from
// exactly one.
type Port struct {
	tx *uart.Transmitter
	rx *uart.Receiver

	handler ByteHandler

	lock  sync.Mutex
	sendq []byte
	stats Stats
}

// NewPort creates a Port from a shared timing.
func NewPort(t uart.Timing) (*Port, error) {
	tx, err := uart.NewTransmitter(t)
	if err != nil {
		return nil, err
	}
	rx, err := uart.NewReceiver(t)
	if err != nil {
		return nil, err
	}
	return &Port{tx: tx, rx: rx}, nil
}

// SetHandler installs the consumer for decoded bytes. Set it before
// the clock starts; the handler runs on the clock goroutine.
func (p *Port) SetHandler(h ByteHandler) {
	p.handler = h
}

// Send queues bytes for transmission.
func (p *Port) Send(data ...byte) {
	p.lock.Lock()
	p.sendq = append(p.sendq, data...)
	p.lock.Unlock()
}

// Pending is the number of queued bytes not yet accepted by the
// serializer.
func (p *Port) Pending() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.sendq)
}

// Busy reports any activity: queued bytes or a frame in flight in
// either direction.
func (p *Port) Busy() bool {
	p.lock.Lock()
	queued := len(p.sendq) > 0
	p.lock.Unlock()
	return queued || p.tx.Busy() || p.rx.Busy()
}

// Out is the line level the port drives during the current tick.
func (p *Port) Out() bool {
	return p.tx.Out()
}

// Stats returns a snapshot of the counters.
func (p *Port) Stats() Stats {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.stats
}

// Reset forces both machines to idle and drops the queue and the
// counters.
func (p *Port) Reset() {
	p.lock.Lock()
	p.sendq = nil
	p.stats = Stats{}
	p.lock.Unlock()
	p.tx.Reset()
	p.rx.Reset()
}

// Take pulls the held byte when no handler is installed.
func (p *Port) Take() (byte, bool) {
	return p.rx.Take()
}

// Tick advances both machines one clock tick. in is the line level
// seen by the receiver; the returned level is the one driven by the
// transmitter for this tick.
func (p *Port) Tick(in bool) bool {
	p.lock.Lock()
	if p.tx.Ready() && len(p.sendq) > 0 {
		p.tx.Offer(p.sendq[0])
		p.sendq = p.sendq[1:]
		p.stats.Sent++
	}
	p.lock.Unlock()

	p.tx.Tick()
	ev := p.rx.Tick(in)

	// Without a handler the sticky register keeps holding, so a slow
	// consumer shows up as overruns instead of silent loss.
	var b byte
	var got bool
	if ev.Done && p.handler != nil {
		b, got = p.rx.Take()
	}
	p.lock.Lock()
	if ev.Done {
		p.stats.Received++
	}
	if ev.Overrun {
		p.stats.Overruns++
	}
	if ev.FrameErr {
		p.stats.FrameErrors++
	}
	p.lock.Unlock()

	if got && p.handler != nil {
		p.handler.HandleByte(b)
	}
	return p.tx.Out()
}
