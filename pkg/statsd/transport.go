package statsd

import "net"

// Dialer opens a datagram endpoint to addr. The default dials UDP; tests
// inject recording dialers through WithDialer.
type Dialer func(addr string) (net.Conn, error)

func dialUDP(addr string) (net.Conn, error) {
	return net.Dial("udp", addr)
}
