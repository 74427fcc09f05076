package uart

type txState int

const (
	txIdle txState = iota // line high, ready for a byte
	txStart               // driving the start cell
	txData                // driving data cells, LSB first
	txStop                // driving the stop cell
)

// Transmitter serializes one byte at a time into a timed idle-high
// waveform. It accepts input under a ready/valid handshake: Ready is
// asserted only while idle, a byte latched with Offer is held until
// the instant both sides agree, and no second byte is ever buffered.
type Transmitter struct {
	timing Timing

	state txState
	timer uint32
	shift byte // unsent payload bits, bit 0 next on the wire
	sent  uint // data cells emitted so far

	out bool

	inValid bool
	inData  byte
}

// NewTransmitter creates an idle Transmitter.
func NewTransmitter(t Timing) (*Transmitter, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	tx := &Transmitter{timing: t}
	tx.Reset()
	return tx, nil
}

// Reset forces the machine to idle, drives the line high and drops
// any latched input.
func (t *Transmitter) Reset() {
	t.state, t.timer = txIdle, 0
	t.shift, t.sent = 0, 0
	t.out = true
	t.inValid = false
}

// Ready reports whether a byte offered now is accepted on the next
// tick. It deasserts for the whole duration of a frame.
func (t *Transmitter) Ready() bool {
	return t.state == txIdle
}

// Busy reports a frame in flight, from start through stop.
func (t *Transmitter) Busy() bool {
	return t.state != txIdle
}

// Out is the line level driven during the current tick. Idle is high.
func (t *Transmitter) Out() bool {
	return t.out
}

// Offer latches b as the producer's valid data. The latch holds until
// the transmitter is idle and consumes it, so offering while busy
// queues exactly the one byte the handshake allows. A second Offer
// before acceptance replaces the first. Returns Ready at the time of
// the call.
func (t *Transmitter) Offer(b byte) bool {
	t.inValid, t.inData = true, b
	return t.Ready()
}

// Tick advances the serializer one clock tick.
func (t *Transmitter) Tick() {
	switch t.state {
	case txIdle:
		if t.inValid {
			t.inValid = false
			t.shift, t.sent = t.inData, 0
			t.out = false
			t.timer = t.timing.BitReload()
			t.state = txStart
		}

	case txStart:
		if t.timer > 0 {
			t.timer--
			break
		}
		t.emitBit()
		t.state = txData

	case txData:
		if t.timer > 0 {
			t.timer--
			break
		}
		if t.sent < DataBits {
			t.emitBit()
			break
		}
		t.out = true
		t.timer = t.timing.BitReload()
		t.state = txStop

	case txStop:
		if t.timer > 0 {
			t.timer--
			break
		}
		t.state = txIdle
	}
}

// emitBit drives the next data cell. Bit 0 goes first; the shift
// register moves right so bit order on the wire is LSB to MSB.
func (t *Transmitter) emitBit() {
	t.out = t.shift&1 != 0
	t.shift >>= 1
	t.sent++
	t.timer = t.timing.BitReload()
}
