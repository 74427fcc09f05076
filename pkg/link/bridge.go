package link

import (
	"context"
	"sync"
	"time"
)

// DefaultFlushInterval batches decoded bytes before writing them out
// as one packet.
const DefaultFlushInterval = 20 * time.Millisecond

// Bridge pumps bytes between a Port and a PacketReadWriter: packets
// read from the transport are queued for transmission, bytes decoded
// off the link are batched and written back as packets.
type Bridge struct {
	RW            PacketReadWriter
	Port          *Port
	FlushInterval time.Duration

	lock    sync.Mutex
	pending []byte
}

// NewBridge creates a Bridge and installs itself as the port's byte
// handler.
func NewBridge(rw PacketReadWriter, port *Port) *Bridge {
	b := &Bridge{RW: rw, Port: port, FlushInterval: DefaultFlushInterval}
	port.SetHandler(HandleByteFunc(b.collect))
	return b
}

// Run pumps until the context is canceled or the transport fails.
func (b *Bridge) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go b.readLoop(subCtx, errCh)

	flush := time.NewTicker(b.FlushInterval)
	defer flush.Stop()
	for {
		select {
		case <-ctx.Done():
			b.Flush()
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-flush.C:
			if err := b.Flush(); err != nil {
				return err
			}
		}
	}
}

// Flush writes out all batched bytes immediately.
func (b *Bridge) Flush() error {
	b.lock.Lock()
	pkt := b.pending
	b.pending = nil
	b.lock.Unlock()
	if len(pkt) == 0 {
		return nil
	}
	return b.RW.WritePacket(pkt)
}

func (b *Bridge) collect(by byte) {
	b.lock.Lock()
	b.pending = append(b.pending, by)
	b.lock.Unlock()
}

func (b *Bridge) readLoop(ctx context.Context, errCh chan<- error) {
	for {
		pkt, err := b.RW.ReadPacket()
		if err != nil {
			errCh <- err
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		b.Port.Send(pkt...)
	}
}
