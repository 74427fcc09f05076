// Package stream bridges link bytes over any io.ReadWriter.
package stream

import "io"

// ReadWriter implements link.PacketReadWriter over a raw byte stream.
// A UART link carries an unframed byte stream, so unlike packetized
// transports no length prefix is added: a packet is simply whatever
// one Read returns.
type ReadWriter struct {
	io.ReadWriter
}

// New creates a ReadWriter over s.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{s}
}

// ReadPacket implements link.PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	buf := make([]byte, 256)
	n, err := p.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	return nil, err
}

// WritePacket implements link.PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	_, err := p.Write(pkt)
	return err
}
