package testhelper

import (
	"time"

	"github.com/logship/logship/config"
)

// DefaultTestConfig returns a testing configuration
func DefaultTestConfig(verbose bool) *config.Config {
	return &config.Config{
		Verbose:        verbose,
		Host:           "127.0.0.1",
		Port:           10101,
		FlushLimit:     10,
		DropLimit:      20,
		ConnectTimeout: 100 * time.Millisecond,
		MaxErrors:      5,
		MaxRetries:     0,
		RetryInterval:  time.Millisecond,
		PoolSize:       2,
	}
}
