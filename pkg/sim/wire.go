package sim

import "github.com/bitwire/uartlink/pkg/link"

// Wire joins two ports with an ideal, noiseless crossed line pair:
// A's transmit line feeds B's receive line and vice versa, each with
// one tick of propagation. Both lines rest idle-high.
type Wire struct {
	A, B *link.Port

	levelA, levelB bool
}

// NewWire creates a Wire between two ports.
func NewWire(a, b *link.Port) *Wire {
	return &Wire{A: a, B: b, levelA: true, levelB: true}
}

// Tick implements Ticker, advancing both ports one tick.
func (w *Wire) Tick() {
	la := w.A.Tick(w.levelB)
	lb := w.B.Tick(w.levelA)
	w.levelA, w.levelB = la, lb
}

// LevelA is the level A drove on its transmit line last tick.
func (w *Wire) LevelA() bool {
	return w.levelA
}

// LevelB is the level B drove on its transmit line last tick.
func (w *Wire) LevelB() bool {
	return w.levelB
}
