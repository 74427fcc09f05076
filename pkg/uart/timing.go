package uart

import "errors"

// DataBits is the number of data cells in a frame. The engine speaks
// 8N1 only.
const DataBits = 8

// ErrZeroPrescale indicates a degenerate bit period.
var ErrZeroPrescale = errors.New("prescale must be >= 1")

// Timing derives the bit-level cadence shared by Transmitter and
// Receiver from a single prescale value. A transmitter and a receiver
// only form a working link when built from the same prescale; the
// engine does not detect a mismatch.
//
// All derived values are down-counter reloads: a counter loaded with R
// decrements while above zero and fires on the tick it reads zero, so
// a reload of R spans R+1 ticks.
type Timing struct {
	Prescale uint32
}

// Validate rejects a prescale with no defined bit period.
func (t Timing) Validate() error {
	if t.Prescale == 0 {
		return ErrZeroPrescale
	}
	return nil
}

// BitPeriod is the duration of one bit cell in clock ticks.
func (t Timing) BitPeriod() uint32 {
	return t.Prescale * 8
}

// BitReload spans one full bit period, keeping every sample after the
// first uniformly centered in its own cell. Reloading short here is
// the classic defect: each sample drifts earlier and the margin decays
// as the bit period shrinks.
func (t Timing) BitReload() uint32 {
	return t.BitPeriod() - 1
}

// StartConfirmReload spans roughly half a bit period, landing the
// receiver's confirmation sample near the middle of the start cell.
func (t Timing) StartConfirmReload() uint32 {
	return t.Prescale*4 - 2
}

// FrameTicks is the total on-wire duration of one frame: start cell,
// DataBits data cells, stop cell.
func (t Timing) FrameTicks() uint32 {
	return (DataBits + 2) * t.BitPeriod()
}
