package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/bitwire/uartlink/pkg/config"
	"github.com/bitwire/uartlink/pkg/link"
	linkmqtt "github.com/bitwire/uartlink/pkg/link/mqtt"
	"github.com/bitwire/uartlink/pkg/link/stream"
	"github.com/bitwire/uartlink/pkg/run"
	"github.com/bitwire/uartlink/pkg/sim"
	"github.com/bitwire/uartlink/pkg/uart"
)

// uartbridge runs a simulated serial link whose far end echoes, and
// bridges the near end to MQTT topics NAME/tx and NAME/rx, or to
// stdin/stdout when no broker is configured.

var configPath = flag.String("config", "uartlink.yaml", "Configuration file.")

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Exitf("config: %v", err)
	}
	timing := uart.Timing{Prescale: cfg.Link.Prescale}

	near, err := link.NewPort(timing)
	if err != nil {
		glog.Exit(err)
	}
	far, err := link.NewPort(timing)
	if err != nil {
		glog.Exit(err)
	}
	far.SetHandler(link.HandleByteFunc(func(b byte) {
		far.Send(b)
	}))

	clock := sim.NewClock().Add(sim.NewWire(near, far))
	if perMs := cfg.Clock.TickRate / 1000; perMs > 0 {
		clock.TicksPerInterval = perMs
	}

	runner := run.NewRunner().HandleSignals()
	runner.Go(clock)

	var rw link.PacketReadWriter
	if cfg.Bridge.Broker != "" {
		opts, prefix, err := linkmqtt.ClientOptionsFromURL(cfg.Bridge.Broker)
		if err != nil {
			glog.Exitf("broker: %v", err)
		}
		if cfg.Bridge.ClientID != "" {
			opts.SetClientID(cfg.Bridge.ClientID)
		}
		queue := linkmqtt.NewQueue(opts, prefix)
		if token := queue.Connect(); token.Wait() && token.Error() != nil {
			glog.Exitf("broker: %v", token.Error())
		}
		defer queue.Close()
		mrw := linkmqtt.NewReadWriter(queue).ForLink(cfg.Bridge.Name)
		runner.Go(mrw)
		rw = mrw
		glog.Infof("bridging link %q to %s", cfg.Bridge.Name, cfg.Bridge.Broker)
	} else {
		rw = stream.New(stdio{})
		glog.Infof("bridging link %q to stdio", cfg.Bridge.Name)
	}

	bridge := link.NewBridge(rw, near)
	bridge.FlushInterval = time.Duration(cfg.Bridge.FlushMs) * time.Millisecond
	runner.Go(bridge)

	if err := runner.Wait(); err != nil && err != io.EOF {
		glog.Exit(err)
	}
}
