package pass

import (
	"fmt"
	"net"
	"time"

	"github.com/jsheehan/pass/internal/xerrors"
)

// DialTimeout bounds the outbound TCP connect, standing in for the
// getaddrinfo+connect pair of the original acquisition client.
const DialTimeout = 5 * time.Second

// Dial connects to the acquisition source over TCP. Address resolution and
// first-result selection are handled by net.Dialer itself.
func Dial(host string, port int) (net.Conn, error) {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	d := net.Dialer{Timeout: DialTimeout}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, xerrors.NewNoConnection("socket.dial", err)
	}
	return conn, nil
}
