// Package sysstats periodically samples Go runtime stats and host CPU/RAM
// usage and reports them as gauges through a statsd-style emitter.
package sysstats

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// Emitter is the slice of the statsd client the reporter needs.
type Emitter interface {
	Gauge(name string, value float64, rate float64) error
	Increment(rate float64, names ...string) error
}

// Reporter ships one snapshot of runtime and host gauges per tick. Emission
// is best effort: a failed sample or a dropped stat is logged and the next
// tick proceeds as usual.
type Reporter struct {
	emit   Emitter
	log    *zap.Logger
	prefix string
	rate   float64

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Option customizes a Reporter.
type Option func(*Reporter)

// WithPrefix overrides the default "sys." stat name prefix.
func WithPrefix(p string) Option {
	return func(r *Reporter) {
		r.prefix = p
	}
}

// WithLogger sets the logger for sampling failures. Defaults to nop.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reporter) {
		r.log = l
	}
}

// WithRate sets the sample rate applied to every emitted stat.
func WithRate(rate float64) Option {
	return func(r *Reporter) {
		r.rate = rate
	}
}

// New creates a Reporter that emits through e.
func New(e Emitter, opts ...Option) *Reporter {
	r := &Reporter{
		emit:   e,
		log:    zap.NewNop(),
		prefix: "sys.",
		rate:   1,
		stop:   make(chan struct{}),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Start launches the background sampling goroutine. It returns immediately;
// sampling continues until ctx is done or Stop is called.
func (r *Reporter) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("sysstats: interval must be > 0")
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			case <-t.C:
				r.report()
			}
		}
	}()
	return nil
}

// Stop halts sampling and waits for the background goroutine to exit.
func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	r.wg.Wait()
}

func (r *Reporter) report() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	r.gauge("runtime.alloc", float64(ms.Alloc))
	r.gauge("runtime.heap_alloc", float64(ms.HeapAlloc))
	r.gauge("runtime.heap_sys", float64(ms.HeapSys))
	r.gauge("runtime.heap_objects", float64(ms.HeapObjects))
	r.gauge("runtime.total_alloc", float64(ms.TotalAlloc))
	r.gauge("runtime.sys", float64(ms.Sys))
	r.gauge("runtime.gc.num", float64(ms.NumGC))
	r.gauge("runtime.gc.pause_total_ns", float64(ms.PauseTotalNs))
	r.gauge("runtime.gc.cpu_fraction", ms.GCCPUFraction)
	r.gauge("runtime.goroutines", float64(runtime.NumGoroutine()))

	if vm, err := mem.VirtualMemory(); err != nil {
		r.log.Warn("virtual memory sample failed", zap.Error(err))
	} else {
		r.gauge("mem.total", float64(vm.Total))
		r.gauge("mem.free", float64(vm.Free))
		r.gauge("mem.used_percent", vm.UsedPercent)
	}

	if util, err := cpu.Percent(0, false); err != nil {
		r.log.Warn("cpu sample failed", zap.Error(err))
	} else if len(util) > 0 {
		r.gauge("cpu.used_percent", util[0])
	}

	if err := r.emit.Increment(r.rate, r.prefix+"poll.count"); err != nil {
		r.log.Warn("poll counter dropped", zap.Error(err))
	}
}

func (r *Reporter) gauge(name string, value float64) {
	if err := r.emit.Gauge(r.prefix+name, value, r.rate); err != nil {
		r.log.Warn("gauge dropped", zap.String("stat", r.prefix+name), zap.Error(err))
	}
}
