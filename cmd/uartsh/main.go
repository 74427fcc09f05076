package main

//go-build: CGO_ENABLED=0

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/bitwire/uartlink/pkg/link"
	"github.com/bitwire/uartlink/pkg/sim"
	"github.com/bitwire/uartlink/pkg/uart"
)

// uartsh is an interactive workbench for the link engine: two ports
// on a crossed wire, stepped manually, with the line waveform and the
// status pulses observable from the prompt.

var (
	prescale   = flag.Uint("prescale", 1, "Link prescale, bit period is prescale*8 ticks.")
	evalOnly   = flag.Bool("e", false, "Evaluation only, no interactive shell.")
	outputJSON = flag.Bool("json", false, "Print status in JSON.")
)

type session struct {
	timing uart.Timing
	clock  *sim.Clock
	wire   *sim.Wire
	ports  map[string]*link.Port
	recv   map[string]*[]byte
}

func newSession(timing uart.Timing) (*session, error) {
	a, err := link.NewPort(timing)
	if err != nil {
		return nil, err
	}
	b, err := link.NewPort(timing)
	if err != nil {
		return nil, err
	}
	s := &session{
		timing: timing,
		wire:   sim.NewWire(a, b),
		ports:  map[string]*link.Port{"a": a, "b": b},
		recv:   map[string]*[]byte{"a": {}, "b": {}},
	}
	a.SetHandler(collectTo(s.recv["a"]))
	b.SetHandler(collectTo(s.recv["b"]))
	s.clock = sim.NewClock().Add(s.wire)
	return s, nil
}

func collectTo(buf *[]byte) link.ByteHandler {
	return link.HandleByteFunc(func(by byte) {
		*buf = append(*buf, by)
	})
}

func (s *session) port(c *ishell.Context) (string, *link.Port, bool) {
	if len(c.Args) < 1 {
		c.Err(fmt.Errorf("PORT (a|b) required"))
		return "", nil, false
	}
	name := strings.ToLower(c.Args[0])
	p, ok := s.ports[name]
	if !ok {
		c.Err(fmt.Errorf("unknown port %q", name))
	}
	return name, p, ok
}

type portStatus struct {
	Pending int        `json:"pending"`
	Busy    bool       `json:"busy"`
	Line    int        `json:"line"`
	Unread  int        `json:"unread"`
	Stats   link.Stats `json:"stats"`
}

type linkStatus struct {
	Ticks     uint64     `json:"ticks"`
	Prescale  uint32     `json:"prescale"`
	BitPeriod uint32     `json:"bit_period"`
	A         portStatus `json:"a"`
	B         portStatus `json:"b"`
}

func levelBit(level bool) int {
	if level {
		return 1
	}
	return 0
}

func (s *session) status() linkStatus {
	st := linkStatus{
		Ticks:     s.clock.Ticks(),
		Prescale:  s.timing.Prescale,
		BitPeriod: s.timing.BitPeriod(),
	}
	st.A = portStatus{
		Pending: s.ports["a"].Pending(),
		Busy:    s.ports["a"].Busy(),
		Line:    levelBit(s.wire.LevelA()),
		Unread:  len(*s.recv["a"]),
		Stats:   s.ports["a"].Stats(),
	}
	st.B = portStatus{
		Pending: s.ports["b"].Pending(),
		Busy:    s.ports["b"].Busy(),
		Line:    levelBit(s.wire.LevelB()),
		Unread:  len(*s.recv["b"]),
		Stats:   s.ports["b"].Stats(),
	}
	return st
}

func parseBytes(args []string) ([]byte, error) {
	var data []byte
	for _, arg := range args {
		val, err := strconv.ParseUint(arg, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q: %v", arg, err)
		}
		data = append(data, byte(val))
	}
	return data, nil
}

func hexDump(data []byte) string {
	out := make([]string, len(data))
	for i, b := range data {
		out[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(out, " ")
}

func main() {
	flag.Parse()

	s, err := newSession(uart.Timing{Prescale: uint32(*prescale)})
	if err != nil {
		fmt.Println(err)
		return
	}

	shell := ishell.New()
	shell.SetPrompt(fmt.Sprintf("uart[%d] > ", *prescale))

	shell.AddCmd(&ishell.Cmd{
		Name: "send",
		Help: "PORT BYTE... queue hex bytes for transmission, e.g. send a 96 3c",
		Func: func(c *ishell.Context) {
			_, p, ok := s.port(c)
			if !ok {
				return
			}
			data, err := parseBytes(c.Args[1:])
			if err != nil {
				c.Err(err)
				return
			}
			if len(data) == 0 {
				c.Err(fmt.Errorf("BYTE... required"))
				return
			}
			p.Send(data...)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "step",
		Help: "[TICKS] advance the clock, default one frame",
		Func: func(c *ishell.Context) {
			n := int(s.timing.FrameTicks())
			if len(c.Args) > 0 {
				val, err := strconv.Atoi(c.Args[0])
				if err != nil || val < 0 {
					c.Err(fmt.Errorf("invalid TICKS %q", c.Args[0]))
					return
				}
				n = val
			}
			s.clock.Step(n)
			c.Printf("tick %d\n", s.clock.Ticks())
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "trace",
		Help: "[TICKS] step and print both line waveforms",
		Func: func(c *ishell.Context) {
			n := int(s.timing.FrameTicks())
			if len(c.Args) > 0 {
				val, err := strconv.Atoi(c.Args[0])
				if err != nil || val < 1 {
					c.Err(fmt.Errorf("invalid TICKS %q", c.Args[0]))
					return
				}
				n = val
			}
			var la, lb strings.Builder
			for i := 0; i < n; i++ {
				s.clock.Step(1)
				fmt.Fprintf(&la, "%d", levelBit(s.wire.LevelA()))
				fmt.Fprintf(&lb, "%d", levelBit(s.wire.LevelB()))
			}
			c.Printf("a: %s\nb: %s\n", la.String(), lb.String())
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "recv",
		Help: "PORT print and clear bytes received by a port",
		Func: func(c *ishell.Context) {
			name, _, ok := s.port(c)
			if !ok {
				return
			}
			buf := s.recv[name]
			if len(*buf) == 0 {
				c.Println("(none)")
				return
			}
			c.Println(hexDump(*buf))
			*buf = (*buf)[:0]
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "status",
		Help: "show clock, ports and line levels",
		Func: func(c *ishell.Context) {
			st := s.status()
			if *outputJSON {
				out, err := json.Marshal(&st)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			c.Printf("tick %d, prescale %d, bit period %d\n",
				st.Ticks, st.Prescale, st.BitPeriod)
			ports := []struct {
				name string
				ps   portStatus
			}{{"a", st.A}, {"b", st.B}}
			for _, entry := range ports {
				name, ps := entry.name, entry.ps
				c.Printf("%s: line=%d busy=%v pending=%d unread=%d sent=%d received=%d overruns=%d frame-errors=%d\n",
					name, ps.Line, ps.Busy, ps.Pending, ps.Unread,
					ps.Stats.Sent, ps.Stats.Received, ps.Stats.Overruns, ps.Stats.FrameErrors)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "reset",
		Help: "reset both ports and drop unread bytes",
		Func: func(c *ishell.Context) {
			for name, p := range s.ports {
				p.Reset()
				*s.recv[name] = (*s.recv[name])[:0]
			}
		},
	})

	if *evalOnly {
		if err := shell.Process(flag.Args()...); err != nil {
			fmt.Println(err)
		}
		return
	}
	shell.Println("uartlink shell, type 'help' for commands")
	shell.Run()
}
