// Package statsd implements a fire-and-forget client for statsd-compatible
// aggregation daemons. Stats are encoded as `<name>:<value>|<type>[|@<rate>]`
// and shipped one per UDP datagram; delivery is best effort and transport
// failures never propagate past the returned error value.
package statsd

import (
	"errors"
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Default destination for a zero-configured client.
const (
	DefaultHost = "localhost"
	DefaultPort = 8125
)

var (
	// ErrNoStats is returned when a call supplies no stat names at all.
	ErrNoStats = errors.New("no stats supplied")
	// ErrEmptyName is returned when a stat name is empty.
	ErrEmptyName = errors.New("empty stat name")
)

// Config holds the destination of the aggregation daemon.
type Config struct {
	Host string
	Port int
}

func (c Config) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Client emits counters, timings, and gauges to a statsd daemon. The zero
// destination is localhost:8125. A Client holds no per-call state and is safe
// for concurrent use; the destination may be repointed at any time with
// SetTarget (last writer wins, sends already in flight keep the old target).
type Client struct {
	mu  sync.RWMutex
	cfg Config

	dial Dialer
	smp  *sampler
	log  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTarget points the client at the given daemon host and port.
func WithTarget(host string, port int) Option {
	return func(c *Client) {
		c.cfg = Config{Host: host, Port: port}
	}
}

// WithLogger sets the logger used to report dropped stats. Defaults to a nop
// logger: silence is the contract, logging is opt-in diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithDialer replaces the UDP dialer.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		c.dial = d
	}
}

// WithRandom replaces the sampler's randomness source.
func WithRandom(src rand.Source) Option {
	return func(c *Client) {
		c.smp = newSampler(src)
	}
}

// New creates a Client pointed at localhost:8125 unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		cfg:  Config{Host: DefaultHost, Port: DefaultPort},
		dial: dialUDP,
		smp:  newSampler(nil),
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTarget repoints the client at a new daemon destination. Concurrent
// reconfiguration during in-flight sends is not arbitrated beyond last
// writer wins; metrics delivery is best effort anyway.
func (c *Client) SetTarget(host string, port int) {
	c.mu.Lock()
	c.cfg = Config{Host: host, Port: port}
	c.mu.Unlock()
}

// Target returns the currently configured destination.
func (c *Client) Target() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Timing records a duration in milliseconds for the named timer.
func (c *Client) Timing(name string, ms int64, rate float64) error {
	return c.Send(map[string]string{name: encodeTiming(ms)}, rate)
}

// Gauge records an instantaneous reading for the named gauge.
func (c *Client) Gauge(name string, value float64, rate float64) error {
	return c.Send(map[string]string{name: encodeGauge(value)}, rate)
}

// Increment adds one to each named counter.
func (c *Client) Increment(rate float64, names ...string) error {
	return c.UpdateCounters(1, rate, names...)
}

// Decrement subtracts one from each named counter.
func (c *Client) Decrement(rate float64, names ...string) error {
	return c.UpdateCounters(-1, rate, names...)
}

// UpdateCounters applies the same delta to every named counter in one
// sampled batch. Supplying no names, or an empty name, is a caller bug and
// fails before anything is transmitted.
func (c *Client) UpdateCounters(delta int64, rate float64, names ...string) error {
	if len(names) == 0 {
		return fmt.Errorf("update counters: %w", ErrNoStats)
	}
	value := encodeCounter(delta)
	batch := make(map[string]string, len(names))
	for _, name := range names {
		batch[name] = value
	}
	return c.Send(batch, rate)
}

// Send samples once for the whole batch and, if the draw passes, transmits
// every entry as its own `name:value` datagram. Values below rate 1 are
// annotated with `|@<rate>`. A nil return means every datagram was accepted
// by the local stack or the call was sampled out; transport failures come
// back as an error value, never as a panic, and a failure on one stat never
// skips the remaining stats.
func (c *Client) Send(batch map[string]string, rate float64) error {
	if len(batch) == 0 {
		return fmt.Errorf("send: %w", ErrNoStats)
	}
	for name := range batch {
		if name == "" {
			return fmt.Errorf("send: %w", ErrEmptyName)
		}
	}

	if !c.smp.shouldSend(rate) {
		return nil
	}

	c.mu.RLock()
	addr := c.cfg.addr()
	c.mu.RUnlock()

	conn, err := c.dial(addr)
	if err != nil {
		c.log.Warn("statsd target unreachable",
			zap.String("addr", addr),
			zap.Int("stats", len(batch)),
			zap.Error(err),
		)
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	var firstErr error
	for name, value := range batch {
		if rate < 1 {
			value = applySampleSuffix(value, rate)
		}
		if _, err := conn.Write([]byte(name + ":" + value)); err != nil {
			c.log.Warn("stat dropped", zap.String("stat", name), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("send %q: %w", name, err)
			}
		}
	}
	return firstErr
}
