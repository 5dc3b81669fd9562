package sysstats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeEmitter struct {
	mu       sync.Mutex
	gauges   map[string]float64
	counters map[string]int
	ticked   chan struct{}
	gaugeErr error
}

func newFakeEmitter() *fakeEmitter {
	return &fakeEmitter{
		gauges:   map[string]float64{},
		counters: map[string]int{},
		ticked:   make(chan struct{}, 16),
	}
}

func (f *fakeEmitter) Gauge(name string, value float64, _ float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gaugeErr != nil {
		return f.gaugeErr
	}
	f.gauges[name] = value
	return nil
}

func (f *fakeEmitter) Increment(_ float64, names ...string) error {
	f.mu.Lock()
	for _, n := range names {
		f.counters[n]++
	}
	f.mu.Unlock()
	select {
	case f.ticked <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeEmitter) gauge(name string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.gauges[name]
	return v, ok
}

func waitTick(t *testing.T, f *fakeEmitter) {
	t.Helper()
	select {
	case <-f.ticked:
	case <-time.After(5 * time.Second):
		t.Fatal("no report within 5s")
	}
}

func TestReporterEmitsRuntimeGauges(t *testing.T) {
	f := newFakeEmitter()
	r := New(f, WithPrefix("t."))

	if err := r.Start(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitTick(t, f)
	r.Stop()

	for _, name := range []string{
		"t.runtime.alloc",
		"t.runtime.heap_alloc",
		"t.runtime.goroutines",
		"t.runtime.gc.num",
	} {
		if _, ok := f.gauge(name); !ok {
			t.Errorf("gauge %q never emitted", name)
		}
	}

	f.mu.Lock()
	polls := f.counters["t.poll.count"]
	f.mu.Unlock()
	if polls == 0 {
		t.Error("poll counter never incremented")
	}
}

func TestReporterDefaultPrefix(t *testing.T) {
	f := newFakeEmitter()
	r := New(f)

	if err := r.Start(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitTick(t, f)
	r.Stop()

	if _, ok := f.gauge("sys.runtime.alloc"); !ok {
		t.Error("default prefix gauge sys.runtime.alloc never emitted")
	}
}

func TestReporterRejectsBadInterval(t *testing.T) {
	r := New(newFakeEmitter())
	if err := r.Start(context.Background(), 0); err == nil {
		t.Fatal("Start with zero interval returned nil")
	}
}

func TestReporterStopIsIdempotent(t *testing.T) {
	f := newFakeEmitter()
	r := New(f)
	if err := r.Start(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.Stop()
	r.Stop()
}

func TestReporterSurvivesEmitterErrors(t *testing.T) {
	f := newFakeEmitter()
	f.gaugeErr = errors.New("dropped")
	r := New(f)

	if err := r.Start(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitTick(t, f)
	waitTick(t, f)
	r.Stop()
}
