package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logship/logship/config"
	"github.com/logship/logship/internal"
)

var tmpConfig = config.New()
var configPath string

// RootCmd is the parent command for all logship-cli commands
var RootCmd = &cobra.Command{
	Use:   "logship-cli",
	Short: "Ship log messages to a collector",
	Long:  ``,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	pflags := RootCmd.PersistentFlags()
	dconf := config.Default

	pflags.StringVarP(&configPath, "config", "c", "",
		"load configuration from `FILE`")
	pflags.BoolVarP(&tmpConfig.Verbose, "verbose", "v", dconf.Verbose,
		"print debug output")
	pflags.StringVar(&tmpConfig.Host, "host", dconf.Host,
		"collector `HOST`")
	pflags.IntVar(&tmpConfig.Port, "port", dconf.Port,
		"collector tcp `PORT`")
	pflags.StringVar(&tmpConfig.SocketPath, "socket-path", dconf.SocketPath,
		"collector unix socket `PATH`")
	pflags.IntVar(&tmpConfig.FlushLimit, "flush-limit", dconf.FlushLimit,
		"buffered `BYTES` that trigger a flush")
	pflags.IntVar(&tmpConfig.DropLimit, "drop-limit", dconf.DropLimit,
		"buffered `BYTES` past which messages are dropped")
	pflags.DurationVar(&tmpConfig.ConnectTimeout, "connect-timeout", dconf.ConnectTimeout,
		"`TIMEOUT` for a single dial attempt")
	pflags.IntVar(&tmpConfig.MaxErrors, "max-errors", dconf.MaxErrors,
		"`NUMBER` of background failures retained")
	pflags.IntVar(&tmpConfig.MaxRetries, "max-retries", dconf.MaxRetries,
		"`NUMBER` of additional attempts after a failure")
	pflags.DurationVar(&tmpConfig.RetryInterval, "retry-interval", dconf.RetryInterval,
		"`WAIT` between attempts")
	pflags.IntVar(&tmpConfig.PoolSize, "pool-size", dconf.PoolSize,
		"`NUMBER` of idle connections kept for reuse")

	RootCmd.AddCommand(SendCmd)
	RootCmd.AddCommand(VersionCmd)
}

// loadConfig layers file/env configuration under any explicitly set
// flags.
func loadConfig(cmd *cobra.Command) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("verbose") {
		tmpConfig.Verbose = conf.Verbose
	}
	if !flags.Changed("host") {
		tmpConfig.Host = conf.Host
	}
	if !flags.Changed("port") {
		tmpConfig.Port = conf.Port
	}
	if !flags.Changed("socket-path") {
		tmpConfig.SocketPath = conf.SocketPath
	}
	if !flags.Changed("flush-limit") {
		tmpConfig.FlushLimit = conf.FlushLimit
	}
	if !flags.Changed("drop-limit") {
		tmpConfig.DropLimit = conf.DropLimit
	}
	if !flags.Changed("connect-timeout") {
		tmpConfig.ConnectTimeout = conf.ConnectTimeout
	}
	if !flags.Changed("max-errors") {
		tmpConfig.MaxErrors = conf.MaxErrors
	}
	if !flags.Changed("max-retries") {
		tmpConfig.MaxRetries = conf.MaxRetries
	}
	if !flags.Changed("retry-interval") {
		tmpConfig.RetryInterval = conf.RetryInterval
	}
	if !flags.Changed("pool-size") {
		tmpConfig.PoolSize = conf.PoolSize
	}

	internal.Debugf(tmpConfig, "%s", tmpConfig)
	return nil
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
