package weavetest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is the part of testing.TB the runner needs.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// ABCIRunner drives an abci.Application block by block, the way a node
// would. Block level failures stop the test.
type ABCIRunner struct {
	t       Tester
	app     abci.Application
	chainID string
	height  int64
}

func NewABCIRunner(t Tester, app abci.Application, chainID string) *ABCIRunner {
	return &ABCIRunner{t: t, app: app, chainID: chainID}
}

// TxRunner submits transactions within a block.
type TxRunner interface {
	CheckTx(xswap.Marshaller) error
	DeliverTx(xswap.Marshaller) (abci.ResponseDeliverTx, error)
}

var _ TxRunner = (*ABCIRunner)(nil)

// TxError is a transaction rejected by the application.
type TxError struct {
	Code uint32
	Log  string
}

func (e *TxError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Log)
}

// InitChain loads genesis, encoded as JSON, in the first block. The
// genesis must change the state.
func (r *ABCIRunner) InitChain(genesis interface{}, at time.Time) {
	r.t.Helper()
	appState, err := json.Marshal(genesis)
	if err != nil {
		r.t.Fatalf("genesis: %s", err)
	}
	changed := r.InBlock(at, func(TxRunner) error {
		r.app.InitChain(abci.RequestInitChain{
			Time:          at,
			ChainId:       r.chainID,
			AppStateBytes: appState,
		})
		return nil
	})
	if !changed {
		r.t.Fatalf("genesis left the state unchanged")
	}
}

func (r *ABCIRunner) CheckTx(tx xswap.Marshaller) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal tx")
	}
	res := r.app.CheckTx(raw)
	if res.Code != 0 {
		return &TxError{Code: res.Code, Log: res.Log}
	}
	return nil
}

func (r *ABCIRunner) DeliverTx(tx xswap.Marshaller) (abci.ResponseDeliverTx, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return abci.ResponseDeliverTx{}, errors.Wrap(err, "marshal tx")
	}
	res := r.app.DeliverTx(raw)
	if res.Code != 0 {
		return res, &TxError{Code: res.Code, Log: res.Log}
	}
	return res, nil
}

// InBlock runs fn between BeginBlock and EndBlock of the next block at
// time at, then commits. An error from fn fails the test. It reports
// whether the app hash changed.
func (r *ABCIRunner) InBlock(at time.Time, fn func(TxRunner) error) bool {
	r.t.Helper()
	r.height++
	before := r.app.Info(abci.RequestInfo{}).LastBlockAppHash

	r.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: r.chainID, Height: r.height, Time: at},
	})
	if err := fn(r); err != nil {
		r.t.Fatalf("block %d: %+v", r.height, err)
	}
	r.app.EndBlock(abci.RequestEndBlock{Height: r.height})

	return !bytes.Equal(before, r.app.Commit().Data)
}
