package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logship/logship/client"
	"github.com/logship/logship/internal"
)

// SendCmd ships messages from arguments and stdin to the collector
var SendCmd = &cobra.Command{
	Use:     "send [messages]",
	Aliases: []string{"s"},
	Short:   "Ship messages to the collector",
	Long:    ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doSend(args)
	},
}

func doSend(args []string) error {
	c := client.New()
	if err := c.Init(tmpConfig); err != nil {
		return err
	}
	defer func() {
		internal.LogError(c.Close())
	}()

	for _, arg := range args {
		if len(arg) == 0 {
			continue
		}
		if err := ship(c, []byte(arg)); err != nil {
			return err
		}
	}

	// also read lines from stdin when it isn't a terminal
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		if err := ship(c, b); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ship appends a newline separator for the collector and logs the
// message. Deferred background failures are reported but don't stop the
// stream; the current message was still buffered.
func ship(c *client.Client, b []byte) error {
	msg := append(internal.CopyBytes(b), '\n')
	err := c.Log(msg)
	if ferr, ok := err.(*client.FlushError); ok {
		fmt.Fprintf(os.Stderr, "background flush failure:\n%s\n", ferr.Text)
		return nil
	}
	return err
}
