package uart

type rxState int

const (
	rxIdle    rxState = iota // watching for a falling edge
	rxConfirm                // waiting for the mid-start confirmation sample
	rxData                   // sampling data cells at bit-period cadence
	rxStop                   // waiting for the stop sample
)

// Event carries the single-tick pulses produced by one receiver step.
// Each pulse is observable exactly once; none of them latches or halts
// reception.
type Event struct {
	// Done reports a frame finalized into the output register.
	Done bool
	// Overrun reports that finalizing the frame overwrote a byte the
	// consumer never took. The newer byte wins.
	Overrun bool
	// FrameErr reports a frame whose stop sample read low. The frame
	// is discarded and the output register left untouched.
	FrameErr bool
}

// Receiver deserializes a timed idle-high waveform back into bytes.
// It confirms a start edge at the half-bit point, samples each data
// cell one bit period apart, validates the stop cell and presents the
// byte through a one-deep sticky output register.
type Receiver struct {
	timing Timing

	state rxState
	timer uint32
	acc   byte // bits received so far, newest in bit 7
	got   uint // data cells sampled so far

	outData  byte
	outValid bool
}

// NewReceiver creates an idle Receiver.
func NewReceiver(t Timing) (*Receiver, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	rx := &Receiver{timing: t}
	rx.Reset()
	return rx, nil
}

// Reset forces the machine to idle and clears the accumulator, the
// output register and its valid flag.
func (r *Receiver) Reset() {
	r.state, r.timer = rxIdle, 0
	r.acc, r.got = 0, 0
	r.outData, r.outValid = 0, false
}

// Busy reports a frame being received, from edge detection through
// the stop sample.
func (r *Receiver) Busy() bool {
	return r.state != rxIdle
}

// Valid reports an unconsumed byte held in the output register. It
// stays asserted, with Data unchanged, until Take.
func (r *Receiver) Valid() bool {
	return r.outValid
}

// Data is the held byte. Meaningful only while Valid.
func (r *Receiver) Data() byte {
	return r.outData
}

// Take is the consumer side of the handshake: it returns the held
// byte and releases the register. ok is false when nothing is held.
func (r *Receiver) Take() (b byte, ok bool) {
	b, ok = r.outData, r.outValid
	r.outValid = false
	return
}

// Tick advances the deserializer one clock tick. level is the line
// as seen during this tick.
func (r *Receiver) Tick(level bool) (ev Event) {
	switch r.state {
	case rxIdle:
		if !level {
			r.timer = r.timing.StartConfirmReload()
			r.state = rxConfirm
		}

	case rxConfirm:
		if r.timer > 0 {
			r.timer--
			break
		}
		if level {
			// Spurious edge: the line recovered before mid-bit.
			// Not a frame error, no frame had started.
			r.state = rxIdle
			break
		}
		r.acc, r.got = 0, 0
		r.timer = r.timing.BitReload()
		r.state = rxData

	case rxData:
		if r.timer > 0 {
			r.timer--
			break
		}
		// Newest sample becomes bit 7, earlier samples shift down:
		// after DataBits samples bit 0 holds the first (LSB-first)
		// cell off the wire.
		r.acc >>= 1
		if level {
			r.acc |= 1 << (DataBits - 1)
		}
		r.got++
		r.timer = r.timing.BitReload()
		if r.got == DataBits {
			r.state = rxStop
		}

	case rxStop:
		if r.timer > 0 {
			r.timer--
			break
		}
		if level {
			ev.Done = true
			ev.Overrun = r.outValid
			r.outData, r.outValid = r.acc, true
		} else {
			ev.FrameErr = true
		}
		r.state = rxIdle
	}
	return
}
