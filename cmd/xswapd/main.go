// Command xswapd runs the destination chain escrow application behind a
// tendermint node.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const usage = `xswapd - destination chain escrow node

Usage:
  xswapd [-home DIR] [-log-level LEVEL] <command> [flags]

Commands:
  start     serve the application over the abci socket
  version   print the version
  help      print this message

Flags:
`

func main() {
	home := flag.String("home", filepath.Join(os.Getenv("HOME"), ".xswap"), "directory holding the state")
	level := flag.String("log-level", "info", "minimal log level: debug, info, error or none")
	flag.Usage = printUsage
	flag.Parse()

	if err := run(*home, *level, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n\n", err)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(flag.CommandLine.Output(), usage)
	flag.PrintDefaults()
}

func run(home, level string, args []string) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInput, "missing command")
	}
	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "start":
		return startCmd(logger, home, rest)
	case "version":
		fmt.Println(xswap.Version())
	case "help":
		printUsage()
	default:
		return errors.Wrapf(errors.ErrInput, "unknown command %q", cmd)
	}
	return nil
}

func newLogger(level string) (log.Logger, error) {
	allow, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "xswap")
	return log.NewFilter(logger, allow), nil
}
