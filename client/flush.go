package client

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/logship/logship/internal"
)

// scheduleFlush queues a background flush run. A trigger that fires
// while a run is already pending or in flight coalesces with it; the
// buffer will cross the threshold again and re-trigger a later run.
func (c *Client) scheduleFlush() {
	select {
	case c.triggerC <- struct{}{}:
	default:
	}
}

// flushLoop owns the flush cycle. Log never waits on network I/O; it
// only signals this goroutine.
func (c *Client) flushLoop() {
	for {
		select {
		case <-c.triggerC:
			c.flush()
		case <-c.stopC:
			return
		}
	}
}

// flush drains the buffer into a single packet and delivers it, making
// MaxRetries+1 total attempts with RetryInterval between them. A cycle
// that exhausts every attempt discards the packet entirely and records
// one description in the error sink for a later Log call to surface.
// The cycle always returns to idle.
func (c *Client) flush() {
	if !atomic.CompareAndSwapInt32(&c.flushing, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&c.flushing, 0)

	c.mu.Lock()
	conf, conn, sink := c.conf, c.conn, c.errs
	packet := c.buf.snapshotAndClear()
	c.mu.Unlock()

	if len(packet) == 0 {
		return
	}

	attempts := conf.MaxRetries + 1
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(conf.RetryInterval)
		}

		if err = conn.connect(); err != nil {
			internal.Debugf(conf, "flush attempt %d/%d: %+v", i+1, attempts, err)
			continue
		}
		if err = conn.send(packet); err != nil {
			internal.Debugf(conf, "flush attempt %d/%d: %+v", i+1, attempts, err)
			continue
		}

		internal.Debugf(conf, "flushed %d byte packet", len(packet))
		return
	}

	c.mu.Lock()
	sink.record(fmt.Sprintf("dropped %d byte packet after %d attempts: %v",
		len(packet), attempts, err))
	c.mu.Unlock()
}
