package client

import (
	"sync/atomic"
	"testing"

	"github.com/logship/logship/testhelper"
)

func TestConnectRetriesExhausted(t *testing.T) {
	conf := testhelper.DefaultTestConfig(testing.Verbose())
	conf.MaxRetries = 2
	server := testhelper.NewMockServer()
	defer server.Close()
	c := newConnector(conf, server)

	server.FailDials(10)
	if err := c.connect(); err == nil {
		t.Fatal("expected connect to fail")
	}
	if dials := server.Dials(); dials != 3 {
		t.Fatalf("expected 1 initial + 2 retried dials, got %d", dials)
	}
}

func TestConnectRetryRecovers(t *testing.T) {
	conf := testhelper.DefaultTestConfig(testing.Verbose())
	conf.MaxRetries = 3
	server := testhelper.NewMockServer()
	defer server.Close()
	c := newConnector(conf, server)

	server.FailDials(2)
	if err := c.connect(); err != nil {
		t.Fatalf("expected connect to recover: %+v", err)
	}
	if c.conn == nil {
		t.Fatal("expected a live transport")
	}
	if dials := server.Dials(); dials != 3 {
		t.Fatalf("expected 3 dials, got %d", dials)
	}
}

func TestSendReturnsConnToPool(t *testing.T) {
	conf := testhelper.DefaultTestConfig(testing.Verbose())
	server := testhelper.NewMockServer()
	defer server.Close()
	c := newConnector(conf, server)

	for i := 0; i < 3; i++ {
		if err := c.connect(); err != nil {
			t.Fatalf("connect %d: %+v", i, err)
		}
		if err := c.send([]byte("0123456789\n")); err != nil {
			t.Fatalf("send %d: %+v", i, err)
		}
	}

	// the first transport is parked and reused, never redialed
	if dials := server.Dials(); dials != 1 {
		t.Fatalf("expected 1 dial across reused sends, got %d", dials)
	}
}

func TestSendFailureInvalidatesConn(t *testing.T) {
	conf := testhelper.DefaultTestConfig(testing.Verbose())
	server := testhelper.NewMockServer()
	defer server.Close()
	c := newConnector(conf, server)

	server.FailReads(1)
	if err := c.connect(); err != nil {
		t.Fatalf("connect: %+v", err)
	}
	if err := c.send([]byte("doomed\n")); err == nil {
		t.Fatal("expected send to fail")
	}
	if c.conn != nil {
		t.Fatal("expected failed transport to be discarded")
	}

	// a retry reconnects from scratch
	if err := c.connect(); err != nil {
		t.Fatalf("reconnect: %+v", err)
	}
	if err := c.send([]byte("ok\n")); err != nil {
		t.Fatalf("send after reconnect: %+v", err)
	}
	if dials := server.Dials(); dials != 2 {
		t.Fatalf("expected 2 dials, got %d", dials)
	}
}

func TestSendWithoutConn(t *testing.T) {
	conf := testhelper.DefaultTestConfig(testing.Verbose())
	c := newConnector(conf, testhelper.NewMockServer())

	if err := c.send([]byte("hi")); err != ErrNotConnected {
		t.Fatalf("expected %v, got %+v", ErrNotConnected, err)
	}
}

func TestConnectGuard(t *testing.T) {
	conf := testhelper.DefaultTestConfig(testing.Verbose())
	server := testhelper.NewMockServer()
	defer server.Close()
	c := newConnector(conf, server)

	atomic.StoreInt32(&c.connecting, 1)
	if err := c.connect(); err != ErrConnecting {
		t.Fatalf("expected %v, got %+v", ErrConnecting, err)
	}

	atomic.StoreInt32(&c.connecting, 0)
	if err := c.connect(); err != nil {
		t.Fatalf("expected connect to succeed once unguarded: %+v", err)
	}
}
