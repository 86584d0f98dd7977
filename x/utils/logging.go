package utils

import (
	"time"

	"github.com/iov-one/xswap"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one line per transaction with its path and duration.
// Failures are logged as errors, deliveries as info and checks as debug.
type Logging struct{}

var _ xswap.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Checker) (*xswap.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("check failed", "err", err)
	} else {
		logger.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Deliverer) (*xswap.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("deliver failed", "err", err)
	} else {
		logger.Info(res.Log)
	}
	return res, err
}

func txLogger(ctx xswap.Context, tx xswap.Tx, start time.Time) log.Logger {
	return xswap.GetLogger(ctx).With(
		"path", xswap.GetPath(tx),
		"duration_us", time.Since(start)/time.Microsecond,
	)
}
