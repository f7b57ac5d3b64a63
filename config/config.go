package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Config holds configuration variables
type Config struct {
	// Verbose prints debugging information.
	Verbose bool `json:"verbose"`

	// Host is the collector hostname or address.
	Host string `json:"host"`

	// Port is the collector TCP port.
	Port int `json:"port"`

	// SocketPath is a unix domain socket path for a local collector. When
	// set, it takes precedence over Host/Port.
	SocketPath string `json:"socket-path"`

	// FlushLimit is the buffered byte size that triggers a flush.
	FlushLimit int `json:"flush-limit"`

	// DropLimit is the buffered byte size past which new messages are
	// rejected. Must be greater than FlushLimit.
	DropLimit int `json:"drop-limit"`

	// ConnectTimeout bounds a single dial attempt.
	ConnectTimeout time.Duration `json:"connect-timeout"`

	// MaxErrors caps how many background failure descriptions are retained
	// for a later Log call to surface.
	MaxErrors int `json:"max-errors"`

	// MaxRetries is the number of additional attempts after a failed
	// connect or send.
	MaxRetries int `json:"max-retries"`

	// RetryInterval is the wait between attempts.
	RetryInterval time.Duration `json:"retry-interval"`

	// PoolSize bounds the idle connections kept for reuse by later flushes.
	PoolSize int `json:"pool-size"`
}

// New returns a new configuration object
func New() *Config {
	return &Config{}
}

// Default is the default client config
var Default = &Config{
	FlushLimit:     4096,
	DropLimit:      1024 * 1024,
	ConnectTimeout: 1000 * time.Millisecond,
	MaxErrors:      5,
	MaxRetries:     3,
	RetryInterval:  100 * time.Millisecond,
	PoolSize:       10,
}

func (c *Config) String() string {
	return fmt.Sprintf("%+v", *c)
}

// Addr returns the network and address of the collector to dial.
func (c *Config) Addr() (network string, addr string) {
	if c.SocketPath != "" {
		return "unix", c.SocketPath
	}
	return "tcp", fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate returns an error pointing to incorrect values for the
// configuration, if any.
func (c *Config) Validate() error {
	if c.SocketPath == "" && (c.Host == "" || c.Port <= 0) {
		return errors.New("one of host/port or socket-path is required")
	}
	if c.FlushLimit <= 0 {
		return errors.New("flush-limit must be positive")
	}
	if c.FlushLimit >= c.DropLimit {
		return errors.New("flush-limit must be less than drop-limit")
	}
	if c.MaxRetries < 0 {
		return errors.New("max-retries must not be negative")
	}
	if c.MaxErrors < 0 {
		return errors.New("max-errors must not be negative")
	}
	if c.PoolSize < 0 {
		return errors.New("pool-size must not be negative")
	}
	return nil
}
