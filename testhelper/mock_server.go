package testhelper

import (
	"errors"
	"net"
	"sync"
	"time"
)

// MockServer plays the collector side of a shipping connection. It hands
// out in-memory pipes from DialTimeout, records every packet read from
// them, and announces each packet on PacketC. Dial and read failures can
// be injected to exercise retry paths.
type MockServer struct {
	// PacketC receives a copy of every packet the server reads.
	PacketC chan []byte

	mu        sync.Mutex
	packets   [][]byte
	dials     int
	failDials int
	failReads int
	conns     []net.Conn
}

// NewMockServer returns a new instance of a MockServer
func NewMockServer() *MockServer {
	return &MockServer{
		PacketC: make(chan []byte, 100),
	}
}

// DialTimeout implements the client Dialer interface.
func (s *MockServer) DialTimeout(network, addr string, timeout time.Duration) (net.Conn, error) {
	s.mu.Lock()
	s.dials++
	if s.failDials > 0 {
		s.failDials--
		s.mu.Unlock()
		return nil, &net.OpError{
			Op:  "dial",
			Net: network,
			Err: errors.New("connection refused"),
		}
	}

	server, client := net.Pipe()
	s.conns = append(s.conns, server)
	failRead := false
	if s.failReads > 0 {
		s.failReads--
		failRead = true
	}
	s.mu.Unlock()

	go s.serve(server, failRead)
	return &recordingConn{Conn: client, server: s}, nil
}

func (s *MockServer) serve(conn net.Conn, failRead bool) {
	if failRead {
		// closing before the first read makes the client's write fail
		conn.Close()
		return
	}

	b := make([]byte, 1024*64)
	for {
		if _, err := conn.Read(b); err != nil {
			return
		}
	}
}

func (s *MockServer) record(b []byte) {
	p := make([]byte, len(b))
	copy(p, b)
	s.mu.Lock()
	s.packets = append(s.packets, p)
	s.mu.Unlock()

	select {
	case s.PacketC <- p:
	default:
	}
}

// recordingConn records written packets on the client side of the pipe,
// so a packet is already visible in Packets by the time Write returns.
// Recording on the server's read side instead would race with callers
// that check Packets right after a synchronous flush.
type recordingConn struct {
	net.Conn
	server *MockServer
}

func (c *recordingConn) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)
	if n > 0 {
		c.server.record(b[:n])
	}
	return n, err
}

// FailDials makes the next n dial attempts fail.
func (s *MockServer) FailDials(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDials = n
}

// FailReads closes the server end of the next n connections before
// reading, so the client's next send on them fails.
func (s *MockServer) FailReads(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = n
}

// Dials returns the number of dial attempts seen so far.
func (s *MockServer) Dials() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dials
}

// Packets returns the packets read so far.
func (s *MockServer) Packets() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	packets := make([][]byte, len(s.packets))
	copy(packets, s.packets)
	return packets
}

// Close implements io.Closer
func (s *MockServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.conns {
		conn.Close()
	}
	s.conns = nil
	return nil
}
