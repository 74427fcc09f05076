// Package uart implements the bit-level engine of an asynchronous
// serial (8N1) link.
package uart

// The engine is a pair of cycle-accurate state machines sharing one
// bit-timing model:
//
//   Transmitter: byte in (ready/valid) -> timed idle-high waveform out
//   Receiver:    timed idle-high waveform in -> byte out (sticky valid)
//
// Framing is fixed 8N1: one low start cell, eight data cells sent
// least-significant bit first, one high stop cell. No parity, no
// flow control, no buffering beyond the single in-flight byte on each
// side; those belong to the layers above (see package link).
//
// Both machines advance exactly one micro-step per call to Tick and
// must be driven from the same logical clock for a paired link.
// Receive inputs are assumed stable; genuinely asynchronous sources
// require an external synchronizer stage before reaching this engine.
