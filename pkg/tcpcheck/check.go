package tcpcheck

import (
	"net"
	"time"

	"github.com/vertti/ragcheck/pkg/check"
)

// DefaultTimeout is used when Check.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Dialer abstracts network dialing for testability.
type Dialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// RealDialer uses the real net package.
type RealDialer struct{}

// DialTimeout dials the network address with a timeout.
func (d *RealDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// Check verifies TCP connectivity to a host:port.
type Check struct {
	Address string        // host:port to connect to
	Timeout time.Duration // connection timeout (default 5s)
	Dialer  Dialer        // injected for testing
}

// Run executes the TCP connectivity check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "tcp: " + c.Address,
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	start := time.Now()
	conn, err := c.Dialer.DialTimeout("tcp", c.Address, timeout)
	if err != nil {
		return result.Error(err)
	}
	defer func() { _ = conn.Close() }()

	result.Status = check.StatusOK
	result.Set("latency", time.Since(start).Round(time.Millisecond).String())
	if addr := conn.RemoteAddr(); addr != nil {
		result.Set("remote", addr.String())
	}
	return result
}
