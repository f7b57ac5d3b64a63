// Package client implements an in-process log shipping client. Messages
// are buffered in memory and shipped to a collector in batches by a
// background flush cycle, so Log never waits on the network. The client
// imposes no framing: a packet is the raw concatenation of messages in
// append order, and callers embed their own separators.
package client

import (
	"sync"
	"sync/atomic"

	"github.com/logship/logship/config"
	"github.com/logship/logship/internal"
)

// Client ships log messages to a remote collector over TCP or a unix
// domain socket. It must be initialized with Init before use. All
// methods are safe for concurrent use.
type Client struct {
	mu     sync.Mutex
	conf   *config.Config
	buf    *buffer
	errs   *errorSink
	conn   *connector
	dialer Dialer

	initialized int32
	flushing    int32
	started     bool
	triggerC    chan struct{}
	stopC       chan struct{}
}

// New returns an uninitialized Client.
func New() *Client {
	return &Client{
		buf:      newBuffer(),
		triggerC: make(chan struct{}, 1),
		stopC:    make(chan struct{}),
	}
}

// WithDialer sets the transport dialer. It should be called before Init,
// as part of initialization.
func (c *Client) WithDialer(d Dialer) *Client {
	c.dialer = d
	return c
}

// Init validates conf and prepares the client for logging. Transient
// state (retry counters, pending background errors, pooled connections)
// is reset. Messages already buffered survive reinitialization and ship
// under the new configuration.
func (c *Client) Init(conf *config.Config) error {
	if conf == nil {
		conf = config.Default
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		internal.LogError(c.conn.close())
	}

	cc := &config.Config{}
	*cc = *conf
	c.conf = cc
	c.errs = newErrorSink(cc.MaxErrors)
	c.conn = newConnector(cc, c.dialer)

	if !c.started {
		go c.flushLoop()
		c.started = true
	}
	atomic.StoreInt32(&c.initialized, 1)
	return nil
}

// IsInitialized reports whether Init has succeeded.
func (c *Client) IsInitialized() bool {
	return atomic.LoadInt32(&c.initialized) == 1
}

// Log buffers msg for shipment, scheduling a background flush once the
// buffered size reaches the flush limit. It returns ErrNotInitialized
// before a successful Init and ErrBufferFull when msg must be rejected
// for backpressure; in both cases msg is not buffered. A *FlushError
// return means msg WAS buffered: it carries descriptions of earlier
// background flush failures, surfaced once and then forgotten.
func (c *Client) Log(msg []byte) error {
	if !c.IsInitialized() {
		return ErrNotInitialized
	}

	c.mu.Lock()
	conf := c.conf
	if c.buf.wouldExceedDropLimit(len(msg), conf.FlushLimit, conf.DropLimit) {
		c.mu.Unlock()
		return ErrBufferFull
	}
	size := c.buf.append(internal.CopyBytes(msg))
	text := c.errs.drainAll()
	c.mu.Unlock()

	if size >= conf.FlushLimit {
		c.scheduleFlush()
	}

	if text != "" {
		return &FlushError{Text: text}
	}
	return nil
}

// Close flushes any pending messages synchronously, stops the background
// flusher, and closes pooled connections. The client can be initialized
// again after Close.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapInt32(&c.initialized, 1, 0) {
		return nil
	}

	c.stopC <- struct{}{}
	c.flush()

	c.mu.Lock()
	c.started = false
	conn := c.conn
	c.mu.Unlock()
	return conn.close()
}
