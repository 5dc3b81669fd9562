package sink

import (
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Listener reads statsd datagrams off a UDP socket and records every line
// into a Store. A datagram may carry several newline-separated lines.
type Listener struct {
	pc  net.PacketConn
	st  *Store
	log *zap.Logger
	wg  sync.WaitGroup
}

// Listen binds a UDP socket on addr. The listener does not read until Start
// is called.
func Listen(addr string, st *Store, l *zap.Logger) (*Listener, error) {
	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{pc: pc, st: st, log: l}, nil
}

// Addr returns the bound UDP address.
func (l *Listener) Addr() net.Addr {
	return l.pc.LocalAddr()
}

// Start launches the read loop.
func (l *Listener) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		buf := make([]byte, 65536)
		for {
			n, from, err := l.pc.ReadFrom(buf)
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				l.log.Warn("read failed", zap.Error(err))
				continue
			}
			l.record(string(buf[:n]), from.String())
		}
	}()
}

// Stop closes the socket and waits for the read loop to exit.
func (l *Listener) Stop() {
	l.pc.Close()
	l.wg.Wait()
}

func (l *Listener) record(payload, from string) {
	now := time.Now()
	for _, raw := range strings.Split(payload, "\n") {
		if raw == "" {
			continue
		}
		l.st.Add(Line{Raw: raw, From: from, At: now})
		l.log.Debug("line received", zap.String("raw", raw), zap.String("from", from))
	}
}
