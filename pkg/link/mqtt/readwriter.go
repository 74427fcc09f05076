package mqtt

import (
	"context"
	"io"
)

// ReadWriter implements link.PacketReadWriter over a Queue: packets
// arrive on SubTopic and leave on PubTopic. Run must be active for
// ReadPacket to yield anything.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh chan []byte
}

// NewReadWriter creates the ReadWriter.
func NewReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{Queue: q, packetCh: make(chan []byte, 1)}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForLink sets topics using the default convention for a link named
// prefix: bytes to transmit arrive on prefix/tx, decoded bytes are
// published on prefix/rx.
func (p *ReadWriter) ForLink(prefix string) *ReadWriter {
	return p.WithTopics(prefix+"/tx", prefix+"/rx")
}

// ReadPacket implements link.PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	pkt, ok := <-p.packetCh
	if !ok {
		return nil, io.EOF
	}
	return pkt, nil
}

// WritePacket implements link.PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Run implements run.Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	defer close(p.packetCh)
	sub := p.Queue.Sub(p.SubTopic, p.handleMsg)
	defer sub.Close()
	<-ctx.Done()
	return ctx.Err()
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	p.packetCh <- payload
}
