package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// App is the abci application. It routes transactions through the
// decorator stack into the extension handlers and serves queries from the
// last committed state.
//
// Steps that take no user input (Info, InitChain, BeginBlock, EndBlock and
// Commit) cannot report errors over abci, so they panic instead.
type App struct {
	name   string
	logger log.Logger
	debug  bool

	state   *state
	decoder xswap.TxDecoder
	handler xswap.Handler
	init    xswap.Initializer
	queries xswap.QueryRouter

	chainID string
	// baseCtx lives as long as the application, blockCtx is replaced on
	// every BeginBlock.
	baseCtx  xswap.Context
	blockCtx xswap.Context
}

var _ abci.Application = (*App)(nil)

// Config groups what an App needs beside its store.
type Config struct {
	Name    string
	Decoder xswap.TxDecoder
	Handler xswap.Handler
	Init    xswap.Initializer
	Queries xswap.QueryRouter
	Logger  log.Logger
	Debug   bool
}

// New loads the latest version of db and returns an application ready to
// serve it. It panics if the store cannot be loaded.
func New(ctx xswap.Context, db xswap.CommitKVStore, conf Config) *App {
	logger := conf.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	a := &App{
		name:    conf.Name,
		logger:  logger,
		debug:   conf.Debug,
		state:   newState(db),
		decoder: conf.Decoder,
		handler: conf.Handler,
		init:    conf.Init,
		queries: conf.Queries,
		baseCtx: xswap.WithLogger(ctx, logger),
	}
	if a.chainID = loadChainID(a.state.deliver); a.chainID != "" {
		a.baseCtx = xswap.WithChainID(a.baseCtx, a.chainID)
	}
	a.blockCtx = xswap.WithHeight(a.baseCtx, a.state.info().Version)
	return a
}

// GetChainID returns the chain id set at genesis, or an empty string
// before InitChain.
func (a *App) GetChainID() string {
	return a.chainID
}

// Logger returns the application logger.
func (a *App) Logger() log.Logger {
	return a.logger
}

// Info reports the last committed height and hash. Height is the block
// holding the transactions, not the one carrying the app hash.
func (a *App) Info(abci.RequestInfo) abci.ResponseInfo {
	info := a.state.info()
	a.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             a.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (a *App) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain stores the chain id and loads the genesis app_state. It is
// called once for the life of the chain.
func (a *App) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := a.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (a *App) loadGenesis(chainID string, appState []byte) error {
	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", a.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json")
	}
	var opts xswap.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := saveChainID(a.state.deliver, chainID); err != nil {
		return err
	}
	a.chainID = chainID
	a.baseCtx = xswap.WithChainID(a.baseCtx, chainID)
	if a.init == nil {
		return nil
	}
	return a.init.FromGenesis(opts, a.state.deliver)
}

// BeginBlock resets the block context with the new header.
func (a *App) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := xswap.WithHeader(a.baseCtx, req.Header)
	ctx = xswap.WithHeight(ctx, req.Header.GetHeight())
	a.blockCtx = xswap.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

func (a *App) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the delivered state and resets the check state.
func (a *App) Commit() abci.ResponseCommit {
	id, err := a.state.commit()
	if err != nil {
		panic(err)
	}
	a.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// CheckTx runs the transaction against the check state.
func (a *App) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := a.decode(raw)
	if err != nil {
		return xswap.CheckTxError(err, a.debug)
	}
	ctx := xswap.WithLogInfo(a.blockCtx, "call", "check_tx", "path", xswap.GetPath(tx))
	res, err := a.handler.Check(ctx, a.state.check, tx)
	return xswap.CheckOrError(res, err, a.debug)
}

// DeliverTx runs the transaction against the deliver state.
func (a *App) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := a.decode(raw)
	if err != nil {
		return xswap.DeliverTxError(err, a.debug)
	}
	ctx := xswap.WithLogInfo(a.blockCtx, "call", "deliver_tx", "path", xswap.GetPath(tx))
	res, err := a.handler.Deliver(ctx, a.state.deliver, tx)
	return xswap.DeliverOrError(res, err, a.debug)
}

// decode never panics, malformed input is reported as an error.
func (a *App) decode(raw []byte) (tx xswap.Tx, err error) {
	defer errors.Recover(&err)
	return a.decoder(raw)
}
