// Package link provides byte-stream endpoints over the uart engine
// and the plumbing to bridge them onto external transports.
package link

// PacketReader reads chunks of link bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes chunks of link bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes chunks of link bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}

// ByteHandler is called for every byte decoded off the link.
type ByteHandler interface {
	HandleByte(byte)
}

// HandleByteFunc is the func form of ByteHandler.
type HandleByteFunc func(byte)

// HandleByte implements ByteHandler.
func (f HandleByteFunc) HandleByte(b byte) {
	f(b)
}
