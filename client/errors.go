package client

import "github.com/pkg/errors"

// ErrNotInitialized is returned by Log before a successful Init.
var ErrNotInitialized = errors.New("client: not initialized")

// ErrBufferFull is returned by Log when accepting the message would push
// the buffer past the drop limit. The message is not buffered.
var ErrBufferFull = errors.New("client: buffer full")

// ErrConnecting is returned when a connect attempt arrives while another
// connect is already in progress. It is transient; a later attempt may
// succeed.
var ErrConnecting = errors.New("client: connect already in progress")

// ErrNotConnected is returned when a send is attempted without a live
// transport.
var ErrNotConnected = errors.New("client: not connected")

// FlushError carries failure descriptions recorded by background flushes
// that exhausted their retries. Log returns one after its own append has
// already been applied, so callers must not treat it as a rejection of
// the current message.
type FlushError struct {
	Text string
}

func (e *FlushError) Error() string {
	return e.Text
}
