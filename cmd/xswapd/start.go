package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iov-one/xswap/app"
	"github.com/iov-one/xswap/errors"
	"github.com/tendermint/tendermint/abci/server"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagInMemory = "in-memory"
)

type startOptions struct {
	addr     string
	debug    bool
	inMemory bool
}

func parseStartFlags(args []string) (startOptions, error) {
	var opts startOptions
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&opts.addr, flagBind, "tcp://localhost:26658", "address server listens on")
	fs.BoolVar(&opts.debug, flagDebug, false, "call stack returned on error")
	fs.BoolVar(&opts.inMemory, flagInMemory, false, "keep the state in memory only")
	if err := fs.Parse(args); err != nil {
		return opts, errors.Wrap(errors.ErrInput, err.Error())
	}
	return opts, nil
}

// startCmd opens the application state in home and serves it over the abci
// socket protocol until the process is interrupted.
func startCmd(logger log.Logger, home string, args []string) error {
	opts, err := parseStartFlags(args)
	if err != nil {
		return err
	}

	dbPath := filepath.Join(home, "abci.db")
	if opts.inMemory {
		dbPath = ""
	}
	application, err := app.GenerateApp(dbPath, logger, opts.debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", opts.addr, "db", dbPath)
	svr, err := server.NewServer(opts.addr, "socket", application)
	if err != nil {
		return errors.Wrap(err, "create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start server")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Stopping ABCI app", "signal", s.String())
	return svr.Stop()
}
