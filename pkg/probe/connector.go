package probe

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
)

// Connector makes a single connection attempt and reports how long it took to establish.
type Connector interface {
	Connect(ctx context.Context, address string, timeout time.Duration) (time.Duration, error)
}

type TCPConnector struct {
	Dialer *net.Dialer
}

func NewTCPConnector() *TCPConnector {
	return &TCPConnector{Dialer: &net.Dialer{}}
}

func (t *TCPConnector) Connect(ctx context.Context, address string, timeout time.Duration) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	conn, err := t.Dialer.DialContext(ctx, "tcp", address)
	elapsed := time.Since(start)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to connect to %s", address)
	}
	_ = conn.Close()
	return elapsed, nil
}
