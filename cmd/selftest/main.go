// Command selftest emits a handful of sample stats at the configured statsd
// daemon: two increments, two decrements, and one timing. With -s it keeps
// streaming system stats afterwards so arriving lines can be watched live.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/vshulcz/statline/internal/config"
	"github.com/vshulcz/statline/pkg/statsd"
	"github.com/vshulcz/statline/pkg/sysstats"
)

func main() {
	cfg, err := config.LoadEmitterConfig(os.Args[1:], nil)
	if err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	client := statsd.New(statsd.WithTarget(cfg.Host, cfg.Port))
	log.Printf("selftest: target=%s:%d rate=%g", cfg.Host, cfg.Port, cfg.Rate)

	report("increment some.int", client.Increment(cfg.Rate, "some.int"))
	report("increment some.other.int", client.Increment(cfg.Rate, "some.other.int"))
	report("decrement some.int", client.Decrement(cfg.Rate, "some.int"))
	report("decrement some.other.int", client.Decrement(cfg.Rate, "some.other.int"))
	report("timing some.query", client.Timing("some.query", 427, cfg.Rate))

	if cfg.SysFor > 0 {
		streamSystemStats(client, cfg.SysFor, cfg.Rate)
	}
}

func streamSystemStats(client *statsd.Client, d time.Duration, rate float64) {
	log.Printf("selftest: streaming system stats for %s", d)

	rep := sysstats.New(client, sysstats.WithRate(rate))
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	if err := rep.Start(ctx, time.Second); err != nil {
		log.Fatalf("failed to start system stats: %v", err)
	}
	<-ctx.Done()
	rep.Stop()
}

func report(op string, err error) {
	if err != nil {
		log.Printf("selftest: %s: %v", op, err)
		return
	}
	log.Printf("selftest: %s: ok", op)
}
