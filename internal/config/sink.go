package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vshulcz/statline/internal/misc"
)

const (
	defaultSinkUDPAddress  = ":8125"
	defaultSinkHTTPAddress = "localhost:8126"
	defaultSinkCapacity    = 512
)

// SinkConfig configures the local debug receiver.
type SinkConfig struct {
	UDPAddress  string
	HTTPAddress string
	Capacity    int
}

// LoadSinkConfig parses flags and environment into a SinkConfig.
// ENV > CLI > defaults.
func LoadSinkConfig(args []string, out io.Writer) (SinkConfig, error) {
	if out == nil {
		out = io.Discard
	}

	fs := flag.NewFlagSet("sink", flag.ContinueOnError)
	fs.SetOutput(out)

	var udpOpt string
	var httpOpt string
	var capOpt int

	fs.StringVar(&udpOpt, "u", "", fmt.Sprintf("UDP listen address, default: %s", defaultSinkUDPAddress))
	fs.StringVar(&httpOpt, "a", "", fmt.Sprintf("HTTP listen address, default: %s", defaultSinkHTTPAddress))
	fs.IntVar(&capOpt, "c", 0, fmt.Sprintf("number of recent lines to keep, default: %d", defaultSinkCapacity))

	if err := fs.Parse(args); err != nil {
		return SinkConfig{}, err
	}

	udp := strings.TrimSpace(misc.Getenv("SINK_UDP_ADDRESS", ""))
	if udp == "" {
		udp = strings.TrimSpace(udpOpt)
	}
	if udp == "" {
		udp = defaultSinkUDPAddress
	}

	httpAddr := strings.TrimSpace(misc.Getenv("SINK_HTTP_ADDRESS", ""))
	if httpAddr == "" {
		httpAddr = strings.TrimSpace(httpOpt)
	}
	if httpAddr == "" {
		httpAddr = defaultSinkHTTPAddress
	}

	capacity := misc.GetInt("SINK_CAPACITY", 0)
	if capacity == 0 {
		capacity = capOpt
	}
	if capacity == 0 {
		capacity = defaultSinkCapacity
	}
	if capacity < 1 {
		return SinkConfig{}, fmt.Errorf("capacity must be >= 1, got %d", capacity)
	}

	return SinkConfig{UDPAddress: udp, HTTPAddress: httpAddr, Capacity: capacity}, nil
}
