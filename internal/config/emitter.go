// Package config loads command configuration with ENV > CLI > defaults
// resolution.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vshulcz/statline/internal/misc"
)

const (
	defaultStatsdHost = "localhost"
	defaultStatsdPort = 8125
	defaultSampleRate = 1.0
)

// EmitterConfig is the destination and sample rate for stat-emitting commands.
type EmitterConfig struct {
	Host string
	Port int
	Rate float64
	// SysFor streams system stats after the self-test for this long; 0 disables.
	SysFor time.Duration
}

// LoadEmitterConfig parses flags and environment into an EmitterConfig.
// ENV > CLI > defaults.
func LoadEmitterConfig(args []string, out io.Writer) (EmitterConfig, error) {
	if out == nil {
		out = io.Discard
	}

	fs := flag.NewFlagSet("emitter", flag.ContinueOnError)
	fs.SetOutput(out)

	var hostOpt string
	var portOpt int
	var rateOpt float64
	var sysOpt int

	fs.StringVar(&hostOpt, "t", "", fmt.Sprintf("statsd daemon host, default: %s", defaultStatsdHost))
	fs.IntVar(&portOpt, "p", 0, fmt.Sprintf("statsd daemon port, default: %d", defaultStatsdPort))
	fs.Float64Var(&rateOpt, "r", 0, fmt.Sprintf("sample rate in (0,1], default: %g", defaultSampleRate))
	fs.IntVar(&sysOpt, "s", 0, "seconds to stream system stats after the self-test, 0 disables")

	if err := fs.Parse(args); err != nil {
		return EmitterConfig{}, err
	}

	host := strings.TrimSpace(misc.Getenv("STATSD_HOST", ""))
	if host == "" {
		host = strings.TrimSpace(hostOpt)
	}
	if host == "" {
		host = defaultStatsdHost
	}

	port := misc.GetInt("STATSD_PORT", 0)
	if port == 0 {
		port = portOpt
	}
	if port == 0 {
		port = defaultStatsdPort
	}
	if port < 1 || port > 65535 {
		return EmitterConfig{}, fmt.Errorf("port out of range: %d", port)
	}

	rate := misc.GetFloat("SAMPLE_RATE", 0)
	if rate == 0 {
		rate = rateOpt
	}
	if rate == 0 {
		rate = defaultSampleRate
	}
	if rate < 0 || rate > 1 {
		return EmitterConfig{}, fmt.Errorf("sample rate must be in (0,1], got %g", rate)
	}

	sys := misc.GetInt("SYS_SECONDS", 0)
	if sys == 0 {
		sys = sysOpt
	}
	if sys < 0 {
		return EmitterConfig{}, fmt.Errorf("sys seconds must be >= 0, got %d", sys)
	}

	return EmitterConfig{
		Host:   host,
		Port:   port,
		Rate:   rate,
		SysFor: time.Duration(sys) * time.Second,
	}, nil
}
