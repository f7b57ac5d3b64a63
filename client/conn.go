package client

import (
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/logship/logship/config"
	"github.com/logship/logship/internal"
)

// Dialer defines an interface for connecting to collectors. It can be
// used for mocking in tests.
type Dialer interface {
	DialTimeout(network, addr string, timeout time.Duration) (net.Conn, error)
}

type netDialer struct{}

func (nd *netDialer) DialTimeout(network, addr string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, addr, timeout)
}

// connector establishes and reuses collector connections. A successful
// send parks the transport in a bounded idle pool for the next flush;
// any write failure invalidates it so a retry reconnects from scratch.
type connector struct {
	// mu guards conn and the pool: a reinitializing client may close
	// the connector while a flush is still using it.
	mu         sync.Mutex
	conf       *config.Config
	dialer     Dialer
	conn       net.Conn
	pool       chan net.Conn
	connecting int32
	retries    int
}

func newConnector(conf *config.Config, dialer Dialer) *connector {
	if dialer == nil {
		dialer = &netDialer{}
	}
	return &connector{
		conf:   conf,
		dialer: dialer,
		pool:   make(chan net.Conn, conf.PoolSize),
	}
}

// connect ensures a live transport, preferring an idle pooled connection
// over dialing. Dial failures are retried up to MaxRetries additional
// times, sleeping RetryInterval between attempts. A call that arrives
// while another connect is in progress fails fast with ErrConnecting
// instead of queuing.
func (c *connector) connect() error {
	if !atomic.CompareAndSwapInt32(&c.connecting, 0, 1) {
		return ErrConnecting
	}
	defer atomic.StoreInt32(&c.connecting, 0)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	select {
	case conn := <-c.pool:
		c.conn = conn
		return nil
	default:
	}

	network, addr := c.conf.Addr()
	var err error
	for c.retries = 0; c.retries <= c.conf.MaxRetries; c.retries++ {
		if c.retries > 0 {
			time.Sleep(c.conf.RetryInterval)
		}

		var conn net.Conn
		conn, err = c.dialer.DialTimeout(network, addr, c.conf.ConnectTimeout)
		if err == nil {
			internal.Debugf(c.conf, "connected to %s", addr)
			c.conn = conn
			c.retries = 0
			return nil
		}
		internal.Debugf(c.conf, "connect to %s failed (attempt %d): %+v", addr, c.retries+1, err)
	}
	return errors.Wrapf(err, "connect to %s failed", addr)
}

// send writes the whole packet to the live transport. On success the
// transport is parked for reuse by a later flush; on failure it is
// closed and discarded, never resumed mid-write.
func (c *connector) send(packet []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	internal.LogError(c.conn.SetWriteDeadline(time.Now().Add(c.conf.ConnectTimeout)))
	n, err := c.conn.Write(packet)
	if err != nil {
		internal.IgnoreError(c.conn.Close())
		c.conn = nil
		return errors.Wrapf(err, "send failed after %d bytes", n)
	}
	internal.LogError(c.conn.SetWriteDeadline(time.Time{}))
	internal.Debugf(c.conf, "wrote %d bytes", n)

	select {
	case c.pool <- c.conn:
	default:
		internal.IgnoreError(c.conn.Close())
	}
	c.conn = nil
	return nil
}

// close shuts down the live transport and drains the idle pool. It
// waits out any connect or send still holding the transport.
func (c *connector) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var closers []io.Closer
	if c.conn != nil {
		closers = append(closers, c.conn)
		c.conn = nil
	}
	for {
		select {
		case conn := <-c.pool:
			closers = append(closers, conn)
		default:
			return internal.CloseAll(closers)
		}
	}
}
