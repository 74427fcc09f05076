// Package sim drives uart engines from a single logical clock, either
// deterministically by step count or in real time.
package sim

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
)

// Ticker advances one clock tick.
type Ticker interface {
	Tick()
}

// TickerFunc is the func form of Ticker.
type TickerFunc func()

// Tick implements Ticker.
func (f TickerFunc) Tick() {
	f()
}

// Clock fans one tick source out to all attached tickers, in the
// order they were added. Everything it drives advances exactly one
// micro-step per tick; there is no parallelism within a tick.
type Clock struct {
	// Interval and TicksPerInterval set the real-time rate for Run:
	// every Interval of wall time, TicksPerInterval ticks elapse.
	Interval         time.Duration
	TicksPerInterval int

	tickers []Ticker
	ticks   uint64
}

// NewClock creates a Clock stepping one million ticks per second in
// real-time mode.
func NewClock() *Clock {
	return &Clock{Interval: time.Millisecond, TicksPerInterval: 1000}
}

// Add attaches tickers.
func (c *Clock) Add(tickers ...Ticker) *Clock {
	c.tickers = append(c.tickers, tickers...)
	return c
}

// Step advances everything n ticks.
func (c *Clock) Step(n int) {
	for i := 0; i < n; i++ {
		for _, t := range c.tickers {
			t.Tick()
		}
		atomic.AddUint64(&c.ticks, 1)
	}
}

// Ticks is the number of ticks elapsed since creation.
func (c *Clock) Ticks() uint64 {
	return atomic.LoadUint64(&c.ticks)
}

// Run steps the clock in real time until the context is canceled.
func (c *Clock) Run(ctx context.Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	perInterval := c.TicksPerInterval
	if perInterval <= 0 {
		perInterval = 1
	}
	glog.V(1).Infof("clock running, %d ticks per %v", perInterval, interval)
	timer := time.NewTicker(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			glog.V(1).Infof("clock stopped at tick %d", c.Ticks())
			return ctx.Err()
		case <-timer.C:
			c.Step(perInterval)
		}
	}
}
