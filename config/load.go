package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional yaml file at path, layered
// under LOGSHIP_* environment variable overrides, on top of Default. An
// empty path skips file loading.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("logship")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("verbose", Default.Verbose)
	v.SetDefault("host", Default.Host)
	v.SetDefault("port", Default.Port)
	v.SetDefault("socket-path", Default.SocketPath)
	v.SetDefault("flush-limit", Default.FlushLimit)
	v.SetDefault("drop-limit", Default.DropLimit)
	v.SetDefault("connect-timeout", Default.ConnectTimeout)
	v.SetDefault("max-errors", Default.MaxErrors)
	v.SetDefault("max-retries", Default.MaxRetries)
	v.SetDefault("retry-interval", Default.RetryInterval)
	v.SetDefault("pool-size", Default.PoolSize)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	conf := New()
	conf.Verbose = v.GetBool("verbose")
	conf.Host = v.GetString("host")
	conf.Port = v.GetInt("port")
	conf.SocketPath = v.GetString("socket-path")
	conf.FlushLimit = v.GetInt("flush-limit")
	conf.DropLimit = v.GetInt("drop-limit")
	conf.ConnectTimeout = v.GetDuration("connect-timeout")
	conf.MaxErrors = v.GetInt("max-errors")
	conf.MaxRetries = v.GetInt("max-retries")
	conf.RetryInterval = v.GetDuration("retry-interval")
	conf.PoolSize = v.GetInt("pool-size")
	return conf, nil
}
