package xswap

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/iov-one/xswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information down to the handlers.
type Context = context.Context

type ctxKey int

const (
	headerKey ctxKey = iota
	heightKey
	chainIDKey
	loggerKey
	blockTimeKey
)

var (
	// DefaultLogger is returned by GetLogger when the context has none.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID accepts 6 to 20 letters, digits, '-' or '_'.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// withOnce stores value under key and panics if the key is already set.
func withOnce(ctx Context, key ctxKey, name string, value interface{}) Context {
	if ctx.Value(key) != nil {
		panic(name + " already set")
	}
	return context.WithValue(ctx, key, value)
}

// WithHeader can be called once per context chain.
func WithHeader(ctx Context, header abci.Header) Context {
	return withOnce(ctx, headerKey, "header", header)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(headerKey).(abci.Header)
	return h, ok
}

// WithHeight can be called once per context chain.
func WithHeight(ctx Context, height int64) Context {
	return withOnce(ctx, heightKey, "height", height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithChainID panics on an invalid id or when an id is already set.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return withOnce(ctx, chainIDKey, "chain id", chainID)
}

// GetChainID panics when no chain id was set. The application always sets
// one before calling a handler.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain id not in context")
	}
	return id
}

// WithBlockTime stores t in UTC.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t.UTC())
}

// BlockTime returns the time set by WithBlockTime, falling back to the
// header time. A missing or zero time is an ErrHuman.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	if !ok {
		if h, found := GetHeader(ctx); found && !h.Time.IsZero() {
			return h.Time.UTC(), nil
		}
		return time.Time{}, errors.Wrap(errors.ErrHuman, "no block time in context")
	}
	if t.IsZero() {
		return t, errors.Wrap(errors.ErrHuman, "zero block time in context")
	}
	return t, nil
}

// BlockUnix returns the block time in seconds since the epoch.
func BlockUnix(ctx Context) (uint64, error) {
	t, err := BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	sec := t.Unix()
	if sec < 0 {
		return 0, errors.Wrap(errors.ErrState, "block time before epoch")
	}
	return uint64(sec), nil
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithLogInfo adds key value pairs to every line logged from ctx.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}
